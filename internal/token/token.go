// Package token defines the Markdown token tree shared by the parser, the
// styling walker and the HTML renderer.
//
// The tree follows the markdown-it token model: nestable constructs are a pair
// of Open and Close tokens that are siblings at the same depth, and the Open
// token holds the tokens it encloses in Children. Leaf tokens (text runs,
// images, fenced blocks) have no pairing; an image keeps its alt text as
// children.
package token

// Nesting tells whether a token opens, closes or is self-contained.
type Nesting int8

const (
	Close Nesting = -1
	Leaf  Nesting = 0
	Open  Nesting = 1
)

func (n Nesting) String() string {
	switch n {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "leaf"
	}
}

// Token is one node of a parsed document.
type Token struct {
	Type    Type
	Nesting Nesting
	Tag     string
	Attrs   Attrs
	// Content is the raw payload of leaf tokens (text run, code body, raw HTML).
	Content string
	// Info is the text after the opening fence of a fenced code block.
	Info string
	// Meta carries type specific data: front matter values or footnote ids.
	Meta any
	// Block marks block-level tokens, which the renderer terminates with newlines.
	Block bool
	// Hidden tokens render no markup of their own (paragraphs in tight lists).
	Hidden   bool
	Children []*Token
}

// New creates a token of the given type with its nesting and block flag
// derived from the type.
func New(typ Type, tag string) *Token {
	return &Token{
		Type:    typ,
		Nesting: typ.Nesting(),
		Tag:     tag,
		Block:   typ.IsBlock(),
	}
}

// AttrGet returns the value of the named attribute.
func (t *Token) AttrGet(name string) (string, bool) {
	return t.Attrs.Get(name)
}

// AttrSet sets the named attribute, replacing any previous value.
func (t *Token) AttrSet(name, value string) {
	t.Attrs.Set(name, value)
}

// AttrJoin appends value to the named attribute separated by a space,
// creating the attribute if missing.
func (t *Token) AttrJoin(name, value string) {
	t.Attrs.Join(name, value)
}

// FootnoteRef identifies a footnote and one of its references.
// RefIndex is zero for the first reference.
type FootnoteRef struct {
	Index    int
	RefIndex int
}
