package mdstyle

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdstyle/internal/mdparse"
	"github.com/alnah/go-mdstyle/internal/render"
	"github.com/alnah/go-mdstyle/internal/styling"
)

// FallbackHTML replaces the output of a document that could not be processed.
const FallbackHTML = `<p class="text-danger">Ошибка обработки markdown</p>`

// Compile-time interface implementation checks.
var (
	_ tokenParser    = (*mdparse.Parser)(nil)
	_ render.RuleSet = (*styling.RuleSet)(nil)
)

// tokenParser turns Markdown into a token tree.
type tokenParser interface {
	Parse(src string) (*mdparse.Document, error)
}

// Pipeline stages, reported in logs and error messages.
const (
	stageParse  = "parse"
	stageStyle  = "style"
	stageRender = "render"
)

// Result is the output of Convert.
type Result struct {
	HTML string
	// FrontMatter holds the YAML front matter of the document, nil if absent.
	FrontMatter map[string]any
}

type serviceConfig struct {
	style      *Style
	parse      mdparse.Options
	hardBreaks bool
	highlight  bool
	theme      string
}

// Service renders Markdown with a fixed style.
// A Service is immutable after New and safe for concurrent use.
type Service struct {
	cfg      serviceConfig
	log      logrus.FieldLogger
	parser   tokenParser
	walker   *styling.Walker
	renderer *render.Renderer
}

// New creates a Service. Without options it uses DefaultStyle with every
// syntax extension enabled and no highlighting.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			style: DefaultStyle(),
			parse: mdparse.DefaultOptions(),
		},
		log: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.style.Validate(); err != nil {
		return nil, err
	}

	var hl *styling.Highlighter
	if s.cfg.highlight {
		var err error
		hl, err = styling.NewHighlighter(s.cfg.theme)
		if err != nil {
			return nil, fmt.Errorf("configuring highlighting: %w", err)
		}
	}

	// Without checkbox tokens, task items can only be recognized by their text.
	cfg := s.cfg.style.config(!s.cfg.parse.TaskLists)

	// Parser may already be injected by tests
	if s.parser == nil {
		s.parser = mdparse.New(s.cfg.parse)
	}
	s.walker = styling.NewWalker(cfg)
	s.renderer = render.New(
		styling.NewRuleSet(render.DefaultRules(), cfg, hl),
		render.Options{XHTML: true, Breaks: s.cfg.hardBreaks},
	)
	return s, nil
}

// Render converts text to an HTML fragment. Empty or whitespace-only input
// returns "". Any failure returns FallbackHTML and is logged as one error
// entry; Render never panics on malformed documents.
func (s *Service) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	res, stage, err := s.convert(text)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"stage":       stage,
			"input_bytes": len(text),
		}).Error("markdown processing failed")
		return FallbackHTML
	}
	return res.HTML
}

// Convert is Render with the error and the front matter exposed.
// Empty or whitespace-only input returns an empty Result.
func (s *Service) Convert(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return &Result{}, nil
	}
	res, _, err := s.convert(text)
	return res, err
}

// convert runs parse, style and render. It reports the stage reached so
// failures can be attributed; panics are recovered into ErrInternal.
func (s *Service) convert(text string) (res *Result, stage string, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s: %w: %v", stage, ErrInternal, r)
		}
	}()

	stage = stageParse
	doc, err := s.parser.Parse(text)
	if err != nil {
		return nil, stage, fmt.Errorf("parsing markdown: %w", err)
	}

	stage = stageStyle
	if err := s.walker.Walk(doc.Tokens); err != nil {
		return nil, stage, fmt.Errorf("styling tokens: %w", err)
	}

	stage = stageRender
	html, err := s.renderer.Render(doc.Tokens)
	if err != nil {
		return nil, stage, fmt.Errorf("rendering HTML: %w", err)
	}
	return &Result{HTML: html, FrontMatter: doc.FrontMatter}, stage, nil
}

// WriteHighlightCSS writes the stylesheet for a highlighting theme, to be
// served alongside output rendered WithHighlighting(theme).
func WriteHighlightCSS(w io.Writer, theme string) error {
	hl, err := styling.NewHighlighter(theme)
	if err != nil {
		return err
	}
	return hl.WriteCSS(w)
}

var (
	defaultOnce    sync.Once
	defaultService *Service
)

// Render converts text with a shared default Service.
// See (*Service).Render.
func Render(text string) string {
	defaultOnce.Do(func() {
		svc, err := New()
		if err != nil {
			// Defaults are static; this only fires if DefaultStyle is broken.
			panic(fmt.Sprintf("mdstyle: default service: %v", err))
		}
		defaultService = svc
	})
	return defaultService.Render(text)
}
