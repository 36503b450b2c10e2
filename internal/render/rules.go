package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdstyle/internal/token"
)

// RuleFunc renders tokens[idx]. Rules receive the whole flattened stream so
// they can inspect neighbours.
type RuleFunc func(tokens []*token.Token, idx int, opts Options) (string, error)

// RuleSet resolves the rule for a token type. A nil result means the type
// cannot be rendered.
type RuleSet interface {
	Rule(t token.Type) RuleFunc
}

// RuleSetFunc adapts a function to RuleSet.
type RuleSetFunc func(t token.Type) RuleFunc

// Rule implements RuleSet.
func (f RuleSetFunc) Rule(t token.Type) RuleFunc { return f(t) }

type defaultRules struct{}

// DefaultRules returns the CommonMark serialization rules.
func DefaultRules() RuleSet {
	return defaultRules{}
}

func (defaultRules) Rule(t token.Type) RuleFunc {
	switch t {
	case token.Text:
		return renderText
	case token.Softbreak:
		return renderSoftbreak
	case token.Hardbreak:
		return renderHardbreak
	case token.CodeInline:
		return renderCodeInline
	case token.CodeBlock:
		return renderCodeBlock
	case token.Fence:
		return renderFence
	case token.Image:
		return renderImage
	case token.HTMLBlock, token.HTMLInline:
		return renderRaw
	case token.FrontMatter:
		return renderNothing
	case token.FootnoteRefMark:
		return renderFootnoteRef
	case token.FootnoteAnchor:
		return renderFootnoteAnchor
	case token.FootnoteBlockOpen:
		return renderFootnoteBlockOpen
	case token.FootnoteBlockClose:
		return renderFootnoteBlockClose
	case token.FootnoteOpen:
		return renderFootnoteOpen
	case token.FootnoteClose:
		return renderFootnoteClose
	}
	if !t.Valid() {
		return nil
	}
	return RenderToken
}

// RenderToken is the generic rule: tag, attributes and block newlines.
func RenderToken(tokens []*token.Token, idx int, opts Options) (string, error) {
	tok := tokens[idx]
	if tok.Hidden {
		return "", nil
	}

	var b strings.Builder

	// A block opener right after a hidden paragraph starts on its own line.
	if tok.Block && tok.Nesting != token.Close && idx > 0 && tokens[idx-1].Hidden {
		b.WriteByte('\n')
	}

	if tok.Nesting == token.Close {
		b.WriteString("</")
	} else {
		b.WriteByte('<')
	}
	b.WriteString(tok.Tag)
	b.WriteString(RenderAttrs(tok.Attrs))
	if tok.Nesting == token.Leaf && opts.XHTML {
		b.WriteString(" /")
	}

	needLF := false
	if tok.Block {
		needLF = true
		if tok.Nesting == token.Open && idx+1 < len(tokens) {
			next := tokens[idx+1]
			switch {
			case !next.Block || next.Hidden:
				needLF = false
			case next.Nesting == token.Close && next.Tag == tok.Tag:
				needLF = false
			}
		}
	}
	if needLF {
		b.WriteString(">\n")
	} else {
		b.WriteByte('>')
	}
	return b.String(), nil
}

// RenderAttrs renders attributes with a leading space each, escaped.
func RenderAttrs(attrs token.Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(EscapeHTML(a.Name))
		b.WriteString(`="`)
		b.WriteString(EscapeHTML(a.Value))
		b.WriteByte('"')
	}
	return b.String()
}

func renderText(tokens []*token.Token, idx int, _ Options) (string, error) {
	return EscapeHTML(tokens[idx].Content), nil
}

func renderSoftbreak(_ []*token.Token, _ int, opts Options) (string, error) {
	if opts.Breaks {
		return lineBreak(opts), nil
	}
	return "\n", nil
}

func renderHardbreak(_ []*token.Token, _ int, opts Options) (string, error) {
	return lineBreak(opts), nil
}

func lineBreak(opts Options) string {
	if opts.XHTML {
		return "<br />\n"
	}
	return "<br>\n"
}

func renderCodeInline(tokens []*token.Token, idx int, _ Options) (string, error) {
	tok := tokens[idx]
	return "<code" + RenderAttrs(tok.Attrs) + ">" + EscapeHTML(tok.Content) + "</code>", nil
}

func renderCodeBlock(tokens []*token.Token, idx int, _ Options) (string, error) {
	tok := tokens[idx]
	return "<pre" + RenderAttrs(tok.Attrs) + "><code>" + EscapeHTML(tok.Content) + "</code></pre>\n", nil
}

func renderFence(tokens []*token.Token, idx int, _ Options) (string, error) {
	tok := tokens[idx]
	attrs := append(token.Attrs(nil), tok.Attrs...)
	if lang := FenceLanguage(tok.Info); lang != "" {
		attrs.Join("class", "language-"+lang)
	}
	return "<pre><code" + RenderAttrs(attrs) + ">" + EscapeHTML(tok.Content) + "</code></pre>\n", nil
}

// FenceLanguage returns the first word of a fence info string.
func FenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func renderImage(tokens []*token.Token, idx int, opts Options) (string, error) {
	tok := tokens[idx]
	tok.AttrSet("alt", InlineText(tok.Children))
	return RenderToken(tokens, idx, opts)
}

// InlineText flattens inline tokens into plain text, as used for image alt.
func InlineText(tokens []*token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok == nil {
			continue
		}
		switch tok.Type {
		case token.Text, token.CodeInline, token.HTMLInline:
			b.WriteString(tok.Content)
		case token.Softbreak, token.Hardbreak:
			b.WriteByte('\n')
		default:
			b.WriteString(InlineText(tok.Children))
		}
	}
	return b.String()
}

func renderRaw(tokens []*token.Token, idx int, _ Options) (string, error) {
	return tokens[idx].Content, nil
}

func renderNothing([]*token.Token, int, Options) (string, error) {
	return "", nil
}

func footnoteMeta(tok *token.Token) (token.FootnoteRef, error) {
	ref, ok := tok.Meta.(token.FootnoteRef)
	if !ok {
		return token.FootnoteRef{}, fmt.Errorf("%s: missing footnote reference (got %T)", tok.Type, tok.Meta)
	}
	return ref, nil
}

func footnoteRefID(ref token.FootnoteRef) string {
	id := "fnref" + strconv.Itoa(ref.Index)
	if ref.RefIndex > 0 {
		id += ":" + strconv.Itoa(ref.RefIndex)
	}
	return id
}

func renderFootnoteRef(tokens []*token.Token, idx int, _ Options) (string, error) {
	ref, err := footnoteMeta(tokens[idx])
	if err != nil {
		return "", err
	}
	n := strconv.Itoa(ref.Index)
	return `<sup class="footnote-ref"><a href="#fn` + n + `" id="` + footnoteRefID(ref) + `">[` + n + `]</a></sup>`, nil
}

func renderFootnoteAnchor(tokens []*token.Token, idx int, _ Options) (string, error) {
	ref, err := footnoteMeta(tokens[idx])
	if err != nil {
		return "", err
	}
	return ` <a href="#` + footnoteRefID(ref) + `" class="footnote-backref">` + "↩︎" + `</a>`, nil
}

func renderFootnoteBlockOpen(_ []*token.Token, _ int, opts Options) (string, error) {
	hr := `<hr class="footnotes-sep">`
	if opts.XHTML {
		hr = `<hr class="footnotes-sep" />`
	}
	return hr + "\n" + `<section class="footnotes">` + "\n" + `<ol class="footnotes-list">` + "\n", nil
}

func renderFootnoteBlockClose([]*token.Token, int, Options) (string, error) {
	return "</ol>\n</section>\n", nil
}

func renderFootnoteOpen(tokens []*token.Token, idx int, _ Options) (string, error) {
	ref, err := footnoteMeta(tokens[idx])
	if err != nil {
		return "", err
	}
	return `<li id="fn` + strconv.Itoa(ref.Index) + `" class="footnote-item">`, nil
}

func renderFootnoteClose([]*token.Token, int, Options) (string, error) {
	return "</li>\n", nil
}
