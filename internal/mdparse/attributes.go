package mdparse

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindAttributeList is the node kind of a consumed {...} attribute block.
var KindAttributeList = ast.NewNodeKind("AttributeList")

// attributeList stands in for the source text of an attribute block that was
// applied to another node. It produces no output.
type attributeList struct {
	ast.BaseInline
}

func (n *attributeList) Kind() ast.NodeKind { return KindAttributeList }

func (n *attributeList) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// attributeParser handles {#id .class key=value} blocks. A block directly
// after a link, image or code span applies to that element. A block ending
// a paragraph, after a space, applies to the paragraph. Anything else stays
// literal text.
type attributeParser struct{}

func (attributeParser) Trigger() []byte { return []byte{'{'} }

func (attributeParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	target := inlineTarget(parent.LastChild())

	attrs, ok := parser.ParseAttributes(block)
	if !ok {
		return nil
	}
	if target == nil {
		para, isPara := parent.(*ast.Paragraph)
		if !isPara || para.LastChild() == nil || !atBlockEnd(para, block) {
			return nil
		}
		if t, ok := para.LastChild().(*ast.Text); ok {
			t.Segment = t.Segment.TrimRightSpace(block.Source())
		}
		target = para
	}

	for _, a := range attrs {
		target.SetAttribute(a.Name, a.Value)
	}
	return &attributeList{}
}

func inlineTarget(n ast.Node) ast.Node {
	switch n.(type) {
	case *ast.Link, *ast.Image, *ast.AutoLink, *ast.CodeSpan:
		return n
	}
	return nil
}

// atBlockEnd reports whether only blanks remain in n after the reader position.
func atBlockEnd(n ast.Node, block text.Reader) bool {
	lines := n.Lines()
	if lines.Len() == 0 {
		return false
	}
	last := lines.At(lines.Len() - 1)
	_, pos := block.Position()
	if pos.Start < last.Start || pos.Start > last.Stop {
		return false
	}
	return util.IsBlank(block.Source()[pos.Start:last.Stop])
}
