// Package styling rewrites a token tree for a CSS design system.
//
// The Walker visits every token once, depth first, and merges the configured
// classes into it: headings get a remapped tag, external links open in a new
// tab without leaking the opener, bullet lists holding checkboxes get the
// task-list classes and images load lazily. Markup that cannot be expressed
// with attributes (code fences and the scroll wrapper around tables) is
// produced by RuleSet, a decorator over the base render rules.
package styling

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/alnah/go-mdstyle/internal/token"
)

// ErrMalformedHeading indicates a heading token whose tag carries no level.
var ErrMalformedHeading = errors.New("malformed heading tag")

// handler mutates one token. It may use the walk state in ctx.
type handler func(ctx *walkContext, tok *token.Token) error

// Walker applies a Config to token trees.
// A Walker is stateless between walks and safe for concurrent use; the
// heading stack lives in the per-walk context.
type Walker struct {
	cfg      *Config
	handlers map[token.Type]handler
}

// NewWalker creates a Walker for cfg.
func NewWalker(cfg Config) *Walker {
	return &Walker{
		cfg: &cfg,
		handlers: map[token.Type]handler{
			token.HeadingOpen:    headingOpen,
			token.HeadingClose:   headingClose,
			token.BulletListOpen: bulletListOpen,
			token.LinkOpen:       linkOpen,
			token.Image:          image,
		},
	}
}

// walkContext is the state of one walk.
type walkContext struct {
	cfg *Config
	// headings holds the remapped tags of headings still open.
	headings *arraystack.Stack
}

// Walk mutates tokens in place. Nil tokens are skipped; the renderer reports them.
func (w *Walker) Walk(tokens []*token.Token) error {
	ctx := &walkContext{cfg: w.cfg, headings: arraystack.New()}
	return w.walk(ctx, tokens)
}

func (w *Walker) walk(ctx *walkContext, tokens []*token.Token) error {
	for _, tok := range tokens {
		if tok == nil {
			continue
		}
		if err := w.visit(ctx, tok); err != nil {
			return err
		}
		if len(tok.Children) > 0 {
			if err := w.walk(ctx, tok.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) visit(ctx *walkContext, tok *token.Token) error {
	if h, ok := w.handlers[tok.Type]; ok {
		return h(ctx, tok)
	}
	switch tok.Nesting {
	case token.Open:
		mergeConfigured(tok, ctx.cfg.Open[tok.Type])
	case token.Leaf:
		mergeConfigured(tok, ctx.cfg.Leaf[tok.Type])
	}
	return nil
}

// mergeConfigured merges classes unless the table has no value for the token.
func mergeConfigured(tok *token.Token, classes string) {
	if classes == "" {
		return
	}
	MergeClass(tok, classes)
}

func headingOpen(ctx *walkContext, tok *token.Token) error {
	level, err := headingLevel(tok.Tag)
	if err != nil {
		return err
	}
	h, ok := ctx.cfg.Headings[level]
	if !ok {
		return nil
	}
	tok.Tag = h.Tag
	mergeConfigured(tok, h.Class)
	ctx.headings.Push(h.Tag)
	return nil
}

// headingClose restores the tag pushed by the matching open. An unmapped
// level pushed nothing, so the close keeps its tag when the stack is empty.
func headingClose(ctx *walkContext, tok *token.Token) error {
	if v, ok := ctx.headings.Pop(); ok {
		tok.Tag = v.(string)
	}
	return nil
}

// headingLevel reads the level digit of an "hN" tag.
func headingLevel(tag string) (int, error) {
	if len(tag) < 2 || tag[1] < '0' || tag[1] > '9' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedHeading, tag)
	}
	return int(tag[1] - '0'), nil
}

func bulletListOpen(ctx *walkContext, tok *token.Token) error {
	if isTaskList(tok, ctx.cfg.LiteralTaskMarkers) {
		mergeConfigured(tok, ctx.cfg.TaskList)
		return nil
	}
	mergeConfigured(tok, ctx.cfg.Open[token.BulletListOpen])
	return nil
}

func linkOpen(ctx *walkContext, tok *token.Token) error {
	mergeConfigured(tok, ctx.cfg.Open[token.LinkOpen])
	secureLink(tok)
	return nil
}

func image(ctx *walkContext, tok *token.Token) error {
	mergeConfigured(tok, ctx.cfg.Image)
	if v, _ := tok.AttrGet("loading"); v == "" {
		tok.AttrSet("loading", "lazy")
	}
	if v, _ := tok.AttrGet("decoding"); v == "" {
		tok.AttrSet("decoding", "async")
	}
	return nil
}
