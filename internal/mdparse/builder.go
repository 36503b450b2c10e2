package mdparse

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdstyle/internal/token"
)

// builder converts one goldmark AST into tokens. It is used for a single
// Parse call.
type builder struct {
	source []byte
	opts   Options

	buf bytes.Buffer
	w   *bufio.Writer
}

// pair returns an open token holding children and its close token.
func pair(open token.Type, tag string, children []*token.Token) (*token.Token, *token.Token) {
	o := token.New(open, tag)
	o.Children = children
	return o, token.New(open.Closer(), tag)
}

// blocks converts the block-level children of parent.
func (b *builder) blocks(parent ast.Node) ([]*token.Token, error) {
	var out []*token.Token
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		toks, err := b.block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

func (b *builder) container(open token.Type, tag string, n ast.Node) ([]*token.Token, error) {
	children, err := b.blocks(n)
	if err != nil {
		return nil, err
	}
	o, c := pair(open, tag, children)
	return []*token.Token{o, c}, nil
}

func (b *builder) inlineContainer(open token.Type, tag string, n ast.Node) ([]*token.Token, *token.Token, error) {
	children, err := b.inlines(n)
	if err != nil {
		return nil, nil, err
	}
	o, c := pair(open, tag, children)
	return []*token.Token{o, c}, o, nil
}

func (b *builder) block(n ast.Node) ([]*token.Token, error) {
	switch n := n.(type) {
	case *ast.Paragraph:
		toks, open, err := b.inlineContainer(token.ParagraphOpen, "p", n)
		if err != nil {
			return nil, err
		}
		setAttributes(open, n)
		return toks, nil

	case *ast.TextBlock:
		// Tight list items and tight definitions.
		toks, _, err := b.inlineContainer(token.ParagraphOpen, "p", n)
		for _, t := range toks {
			t.Hidden = true
		}
		return toks, err

	case *ast.Heading:
		toks, open, err := b.inlineContainer(token.HeadingOpen, "h"+strconv.Itoa(n.Level), n)
		if err != nil {
			return nil, err
		}
		setAttributes(open, n)
		return toks, nil

	case *ast.ThematicBreak:
		return []*token.Token{token.New(token.Hr, "hr")}, nil

	case *ast.CodeBlock:
		tok := token.New(token.CodeBlock, "code")
		tok.Content = b.lines(n)
		return []*token.Token{tok}, nil

	case *ast.FencedCodeBlock:
		tok := token.New(token.Fence, "code")
		if n.Info != nil {
			tok.Info = strings.TrimSpace(b.decode(n.Info.Segment.Value(b.source)))
		}
		tok.Content = b.lines(n)
		return []*token.Token{tok}, nil

	case *ast.Blockquote:
		return b.container(token.BlockquoteOpen, "blockquote", n)

	case *ast.List:
		open, tag := token.BulletListOpen, "ul"
		if n.IsOrdered() {
			open, tag = token.OrderedListOpen, "ol"
		}
		toks, err := b.container(open, tag, n)
		if err != nil {
			return nil, err
		}
		if n.IsOrdered() && n.Start != 1 {
			toks[0].AttrSet("start", strconv.Itoa(n.Start))
		}
		if hasTaskItem(toks[0].Children) {
			toks[0].AttrJoin("class", "contains-task-list")
		}
		return toks, nil

	case *ast.ListItem:
		toks, err := b.container(token.ListItemOpen, "li", n)
		if err != nil {
			return nil, err
		}
		if b.hasCheckbox(n) {
			toks[0].AttrJoin("class", "task-list-item")
		}
		return toks, nil

	case *ast.HTMLBlock:
		content := b.lines(n)
		if n.HasClosure() {
			content += string(n.ClosureLine.Value(b.source))
		}
		if !b.opts.HTML {
			return b.literalParagraph(content), nil
		}
		tok := token.New(token.HTMLBlock, "")
		tok.Content = content
		return []*token.Token{tok}, nil

	case *east.Table:
		return b.table(n)

	case *east.DefinitionList:
		return b.container(token.DlOpen, "dl", n)

	case *east.DefinitionTerm:
		toks, _, err := b.inlineContainer(token.DtOpen, "dt", n)
		return toks, err

	case *east.DefinitionDescription:
		return b.container(token.DdOpen, "dd", n)

	case *east.FootnoteList:
		return b.container(token.FootnoteBlockOpen, "", n)

	case *east.Footnote:
		toks, err := b.container(token.FootnoteOpen, "li", n)
		if err != nil {
			return nil, err
		}
		toks[0].Meta = token.FootnoteRef{Index: n.Index}
		toks[1].Meta = toks[0].Meta
		return toks, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind())
}

// hasCheckbox reports whether the first inline of a list item is a task checkbox.
func (b *builder) hasCheckbox(item *ast.ListItem) bool {
	if !b.opts.TaskLists {
		return false
	}
	first := item.FirstChild()
	if first == nil {
		return false
	}
	_, ok := first.FirstChild().(*east.TaskCheckBox)
	return ok
}

func hasTaskItem(items []*token.Token) bool {
	for _, item := range items {
		if item.Type != token.ListItemOpen {
			continue
		}
		if class, _ := item.AttrGet("class"); class == "task-list-item" {
			return true
		}
	}
	return false
}

func (b *builder) table(n *east.Table) ([]*token.Token, error) {
	var head, body []*token.Token
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *east.TableHeader:
			row, err := b.tableRow(child, token.ThOpen, "th")
			if err != nil {
				return nil, err
			}
			o, c := pair(token.TheadOpen, "thead", row)
			head = []*token.Token{o, c}
		case *east.TableRow:
			row, err := b.tableRow(child, token.TdOpen, "td")
			if err != nil {
				return nil, err
			}
			body = append(body, row...)
		default:
			return nil, fmt.Errorf("%w: %s in table", ErrUnsupportedNode, child.Kind())
		}
	}

	children := head
	if len(body) > 0 {
		o, c := pair(token.TbodyOpen, "tbody", body)
		children = append(children, o, c)
	}
	o, c := pair(token.TableOpen, "table", children)
	return []*token.Token{o, c}, nil
}

// tableRow converts a header or body row into a tr pair of cells.
func (b *builder) tableRow(row ast.Node, cell token.Type, tag string) ([]*token.Token, error) {
	var cells []*token.Token
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		tc, ok := c.(*east.TableCell)
		if !ok {
			return nil, fmt.Errorf("%w: %s in table row", ErrUnsupportedNode, c.Kind())
		}
		toks, open, err := b.inlineContainer(cell, tag, tc)
		if err != nil {
			return nil, err
		}
		if tc.Alignment != east.AlignNone {
			open.AttrSet("style", "text-align:"+tc.Alignment.String())
		}
		cells = append(cells, toks...)
	}
	o, c := pair(token.TrOpen, "tr", cells)
	return []*token.Token{o, c}, nil
}

// literalParagraph renders raw HTML as escaped text when HTML is disabled.
func (b *builder) literalParagraph(content string) []*token.Token {
	var children []*token.Token
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			children = append(children, token.New(token.Softbreak, "br"))
		}
		children = appendText(children, line)
	}
	o, c := pair(token.ParagraphOpen, "p", children)
	return []*token.Token{o, c}
}

// inlines converts the inline children of parent. Adjacent text runs are
// merged into one text token.
func (b *builder) inlines(parent ast.Node) ([]*token.Token, error) {
	var out []*token.Token
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		var err error
		out, err = b.inline(out, n)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *builder) inline(out []*token.Token, n ast.Node) ([]*token.Token, error) {
	switch n := n.(type) {
	case *ast.Text:
		value := n.Segment.Value(b.source)
		var s string
		if n.IsRaw() {
			s = string(value)
		} else {
			s = b.decode(value)
		}
		switch {
		case n.HardLineBreak():
			out = appendText(out, strings.TrimRight(s, " "))
			out = append(out, token.New(token.Hardbreak, "br"))
		case n.SoftLineBreak():
			out = appendText(out, strings.TrimRight(s, " "))
			out = append(out, token.New(token.Softbreak, "br"))
		default:
			out = appendText(out, s)
		}
		return out, nil

	case *ast.String:
		switch {
		case n.IsCode():
			// Typographer replacements are entity references.
			return appendText(out, html.UnescapeString(string(n.Value))), nil
		case n.IsRaw():
			return appendText(out, string(n.Value)), nil
		default:
			return appendText(out, b.decode(n.Value)), nil
		}

	case *ast.CodeSpan:
		var content strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			t, ok := c.(*ast.Text)
			if !ok {
				continue
			}
			v := t.Segment.Value(b.source)
			if bytes.HasSuffix(v, []byte("\n")) {
				content.Write(v[:len(v)-1])
				content.WriteByte(' ')
			} else {
				content.Write(v)
			}
		}
		tok := token.New(token.CodeInline, "code")
		tok.Content = content.String()
		setAttributes(tok, n)
		return append(out, tok), nil

	case *ast.Emphasis:
		typ, tag := token.EmOpen, "em"
		if n.Level == 2 {
			typ, tag = token.StrongOpen, "strong"
		}
		toks, _, err := b.inlineContainer(typ, tag, n)
		return append(out, toks...), err

	case *east.Strikethrough:
		toks, _, err := b.inlineContainer(token.StrikeOpen, "s", n)
		return append(out, toks...), err

	case *ast.Link:
		if gmhtml.IsDangerousURL(n.Destination) {
			return b.unwrap(out, n)
		}
		toks, open, err := b.inlineContainer(token.LinkOpen, "a", n)
		if err != nil {
			return nil, err
		}
		open.AttrSet("href", string(util.URLEscape(n.Destination, true)))
		if len(n.Title) > 0 {
			open.AttrSet("title", b.decode(n.Title))
		}
		setAttributes(open, n)
		return append(out, toks...), nil

	case *ast.AutoLink:
		url := n.URL(b.source)
		label := string(n.Label(b.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		if gmhtml.IsDangerousURL(url) {
			return appendText(out, label), nil
		}
		o, c := pair(token.LinkOpen, "a", appendText(nil, label))
		o.AttrSet("href", string(util.URLEscape(url, false)))
		setAttributes(o, n)
		return append(out, o, c), nil

	case *ast.Image:
		alt, err := b.inlines(n)
		if err != nil {
			return nil, err
		}
		if gmhtml.IsDangerousURL(n.Destination) {
			return append(out, alt...), nil
		}
		tok := token.New(token.Image, "img")
		tok.AttrSet("src", string(util.URLEscape(n.Destination, true)))
		tok.AttrSet("alt", "")
		if len(n.Title) > 0 {
			tok.AttrSet("title", b.decode(n.Title))
		}
		tok.Children = alt
		setAttributes(tok, n)
		return append(out, tok), nil

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			raw.Write(seg.Value(b.source))
		}
		if !b.opts.HTML {
			return appendText(out, raw.String()), nil
		}
		tok := token.New(token.HTMLInline, "")
		tok.Content = raw.String()
		return append(out, tok), nil

	case *east.TaskCheckBox:
		tok := token.New(token.TaskCheckbox, "input")
		tok.AttrSet("class", "task-list-item-checkbox")
		tok.AttrSet("type", "checkbox")
		if n.IsChecked {
			tok.AttrSet("checked", "checked")
		}
		out = append(out, tok)
		// The checkbox parser swallows the space before the item text.
		return appendText(out, " "), nil

	case *attributeList:
		return out, nil

	case *east.FootnoteLink:
		tok := token.New(token.FootnoteRefMark, "")
		tok.Meta = token.FootnoteRef{Index: n.Index, RefIndex: n.RefIndex}
		return append(out, tok), nil

	case *east.FootnoteBacklink:
		tok := token.New(token.FootnoteAnchor, "")
		tok.Meta = token.FootnoteRef{Index: n.Index, RefIndex: n.RefIndex}
		return append(out, tok), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind())
}

// unwrap keeps the children of a link whose destination is refused.
func (b *builder) unwrap(out []*token.Token, n ast.Node) ([]*token.Token, error) {
	children, err := b.inlines(n)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if c.Type == token.Text {
			out = appendText(out, c.Content)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// appendText adds s as a text token, merging it into a trailing text token.
func appendText(out []*token.Token, s string) []*token.Token {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Type == token.Text {
		out[n-1].Content += s
		return out
	}
	tok := token.New(token.Text, "")
	tok.Content = s
	return append(out, tok)
}

// lines joins the source lines of a block node.
func (b *builder) lines(n ast.Node) string {
	var s strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		s.Write(seg.Value(b.source))
	}
	return s.String()
}

// decode resolves backslash escapes and entity references in a source span.
func (b *builder) decode(value []byte) string {
	if bytes.IndexAny(value, "\\&\x00") < 0 {
		return string(value)
	}
	if b.w == nil {
		b.w = bufio.NewWriter(&b.buf)
	}
	b.buf.Reset()
	gmhtml.DefaultWriter.Write(b.w, value)
	_ = b.w.Flush()
	return html.UnescapeString(b.buf.String())
}

// setAttributes copies {...} attributes of n onto tok. Classes are joined to
// any class already present, other names replace.
func setAttributes(tok *token.Token, n ast.Node) {
	for _, a := range n.Attributes() {
		name := string(a.Name)
		if name == "class" {
			tok.AttrJoin(name, attrValue(a.Value))
			continue
		}
		tok.AttrSet(name, attrValue(a.Value))
	}
}

func attrValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
