package styling

import (
	"strings"

	"github.com/alnah/go-mdstyle/internal/render"
	"github.com/alnah/go-mdstyle/internal/token"
)

// fenceEscaper escapes fenced code bodies. Unlike the default rules it also
// escapes single quotes.
var fenceEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// RuleSet decorates a base rule set: fences get the code block class on
// <pre>, and tables are wrapped in a scroll container. All other token types
// are delegated to the base rules.
type RuleSet struct {
	base        render.RuleSet
	preClass    string
	wrapper     string
	highlighter *Highlighter
}

// NewRuleSet wraps base. A nil base means render.DefaultRules, a nil
// highlighter leaves fenced code escaped but unhighlighted.
func NewRuleSet(base render.RuleSet, cfg Config, hl *Highlighter) *RuleSet {
	if base == nil {
		base = render.DefaultRules()
	}
	return &RuleSet{
		base:        base,
		preClass:    cfg.CodeBlockClass(),
		wrapper:     cfg.TableWrapper,
		highlighter: hl,
	}
}

// Rule implements render.RuleSet.
func (r *RuleSet) Rule(t token.Type) render.RuleFunc {
	switch t {
	case token.Fence:
		return r.fence
	case token.TableOpen:
		if inner := r.base.Rule(t); inner != nil {
			return r.tableOpen(inner)
		}
	case token.TableClose:
		if inner := r.base.Rule(t); inner != nil {
			return r.tableClose(inner)
		}
	}
	return r.base.Rule(t)
}

func (r *RuleSet) fence(tokens []*token.Token, idx int, _ render.Options) (string, error) {
	tok := tokens[idx]
	lang := render.FenceLanguage(tok.Info)

	var body string
	highlighted := false
	if r.highlighter != nil && lang != "" {
		body, highlighted = r.highlighter.Highlight(lang, tok.Content)
	}
	if !highlighted {
		body = fenceEscaper.Replace(tok.Content)
	}

	var b strings.Builder
	b.WriteString("<pre")
	if r.preClass != "" {
		b.WriteString(` class="` + render.EscapeHTML(r.preClass) + `"`)
	}
	b.WriteString("><code")
	if lang != "" {
		class := "language-" + lang
		if highlighted {
			class += " " + chromaClass
		}
		b.WriteString(` class="` + render.EscapeHTML(class) + `"`)
	}
	b.WriteByte('>')
	b.WriteString(body)
	b.WriteString("</code></pre>\n")
	return b.String(), nil
}

func (r *RuleSet) tableOpen(inner render.RuleFunc) render.RuleFunc {
	return func(tokens []*token.Token, idx int, opts render.Options) (string, error) {
		out, err := inner(tokens, idx, opts)
		if err != nil {
			return "", err
		}
		if r.wrapper == "" {
			return "<div>" + out, nil
		}
		return `<div class="` + render.EscapeHTML(r.wrapper) + `">` + out, nil
	}
}

func (r *RuleSet) tableClose(inner render.RuleFunc) render.RuleFunc {
	return func(tokens []*token.Token, idx int, opts render.Options) (string, error) {
		out, err := inner(tokens, idx, opts)
		if err != nil {
			return "", err
		}
		return out + "</div>", nil
	}
}
