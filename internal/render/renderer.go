// Package render serializes a token tree to HTML.
//
// Serialization follows the markdown-it HTML renderer: every token type has a
// rule, and the generic RenderToken rule emits the token's tag and attributes
// with newlines after block-level tags. Rules are looked up through a RuleSet,
// so callers can decorate DefaultRules to change the markup of single token
// types without touching the others.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdstyle/internal/token"
)

// Sentinel errors for structurally invalid token trees.
var (
	ErrUnbalanced = errors.New("unbalanced open/close tokens")
	ErrNoRule     = errors.New("no render rule for token type")
	ErrNilToken   = errors.New("nil token in tree")
)

// Options controls serialization details shared by all rules.
type Options struct {
	// XHTML closes void elements with " />".
	XHTML bool
	// Breaks renders soft line breaks as <br>.
	Breaks bool
}

// DefaultOptions matches the CommonMark preset: XHTML void tags, soft breaks
// kept as newlines.
func DefaultOptions() Options {
	return Options{XHTML: true}
}

// Renderer turns a token tree into an HTML fragment.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	rules RuleSet
	opts  Options
}

// New creates a Renderer using rules for every token type.
func New(rules RuleSet, opts Options) *Renderer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Renderer{rules: rules, opts: opts}
}

// Render serializes tokens. The tree is flattened into document order first
// so rules can look at neighbouring tokens.
func (r *Renderer) Render(tokens []*token.Token) (string, error) {
	flat, err := Flatten(tokens)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, tok := range flat {
		rule := r.rules.Rule(tok.Type)
		if rule == nil {
			return "", fmt.Errorf("%w: %s", ErrNoRule, tok.Type)
		}
		out, err := rule(flat, i, r.opts)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", tok.Type, err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// Flatten returns the tokens in document order: each open token is followed
// by its children, then by the rest of its siblings. Leaf children (image alt
// text) stay attached to their leaf. Open and close tokens must balance.
func Flatten(tokens []*token.Token) ([]*token.Token, error) {
	var (
		flat  []*token.Token
		stack []token.Type
	)
	var walk func(list []*token.Token) error
	walk = func(list []*token.Token) error {
		for _, tok := range list {
			if tok == nil {
				return ErrNilToken
			}
			flat = append(flat, tok)
			switch tok.Nesting {
			case token.Open:
				stack = append(stack, tok.Type)
				depth := len(stack)
				if err := walk(tok.Children); err != nil {
					return err
				}
				if len(stack) != depth {
					return fmt.Errorf("%w: children of %s", ErrUnbalanced, tok.Type)
				}
			case token.Close:
				if len(stack) == 0 {
					return fmt.Errorf("%w: %s without opener", ErrUnbalanced, tok.Type)
				}
				opener := stack[len(stack)-1]
				if opener.Closer() != tok.Type {
					return fmt.Errorf("%w: %s closes %s", ErrUnbalanced, tok.Type, opener)
				}
				stack = stack[:len(stack)-1]
			}
		}
		return nil
	}

	if err := walk(tokens); err != nil {
		return nil, err
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %s left open", ErrUnbalanced, stack[len(stack)-1])
	}
	return flat, nil
}
