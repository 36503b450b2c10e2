package styling

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownTheme indicates a highlighting theme chroma does not ship.
var ErrUnknownTheme = errors.New("unknown highlighting theme")

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "github"

// chromaClass scopes the token classes; WriteCSS selectors start with it.
const chromaClass = "chroma"

// Highlighter turns fenced code into chroma span markup using CSS classes,
// so the colours come from the stylesheet written by WriteCSS.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for a chroma theme name.
func NewHighlighter(theme string) (*Highlighter, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return &Highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// Highlight returns the highlighted markup of code. It reports false when
// the language is unknown to chroma or tokenizing fails; callers then fall
// back to escaped text.
func (h *Highlighter) Highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", false
	}
	return b.String(), true
}

// WriteCSS writes the stylesheet for the theme's token classes.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
