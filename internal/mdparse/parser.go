// Package mdparse turns Markdown text into a token tree.
//
// Parsing is delegated to goldmark (CommonMark plus tables, strikethrough,
// footnotes, task lists, definition lists, linkify, typographer and
// {#id .class key=value} attributes on headings, paragraphs, links, images
// and code spans). The resulting AST is converted into the markdown-it style token
// tree of package token, which is what the styling walker and the HTML
// renderer operate on. Front matter is split off before goldmark sees the
// input and decoded as YAML.
package mdparse

import (
	"errors"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdstyle/internal/token"
)

// ErrUnsupportedNode indicates the AST contains a node kind with no token mapping.
var ErrUnsupportedNode = errors.New("unsupported markdown node")

// Options selects the syntax extensions and raw HTML handling.
type Options struct {
	// HTML passes raw HTML blocks and inline tags through. When false they
	// are kept as literal text.
	HTML        bool
	Linkify     bool
	Typographer bool
	TaskLists   bool
}

// DefaultOptions enables everything, matching the rendering service defaults.
func DefaultOptions() Options {
	return Options{
		HTML:        true,
		Linkify:     true,
		Typographer: true,
		TaskLists:   true,
	}
}

// Document is the result of parsing one input.
type Document struct {
	Tokens []*token.Token
	// FrontMatter holds the decoded YAML front matter, nil when the input has
	// none or it is not a YAML mapping.
	FrontMatter map[string]any
}

// Parser parses Markdown into token trees.
// A Parser is safe for concurrent use.
type Parser struct {
	md   goldmark.Markdown
	opts Options
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,
		extension.DefinitionList,
	}
	if opts.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if opts.TaskLists {
		exts = append(exts, extension.TaskList)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAttribute(), // # Heading {#id .class}
			parser.WithInlineParsers(util.Prioritized(attributeParser{}, 500)),
		),
	)
	return &Parser{md: md, opts: opts}
}

// crlfOrCR matches Windows and old Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Parse parses src into a Document.
func (p *Parser) Parse(src string) (*Document, error) {
	src = crlfOrCR.ReplaceAllString(src, "\n")

	doc := &Document{}
	var fm *token.Token
	fm, src = splitFrontMatter(src)
	if fm != nil {
		doc.Tokens = append(doc.Tokens, fm)
		doc.FrontMatter, _ = fm.Meta.(map[string]any)
	}

	source := []byte(src)
	root := p.md.Parser().Parse(text.NewReader(source))

	b := &builder{source: source, opts: p.opts}
	tokens, err := b.blocks(root)
	if err != nil {
		return nil, err
	}
	doc.Tokens = append(doc.Tokens, tokens...)
	return doc, nil
}
