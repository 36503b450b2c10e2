package mdstyle

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/alnah/go-mdstyle/internal/styling"
	"github.com/alnah/go-mdstyle/internal/token"
	"github.com/alnah/go-mdstyle/internal/yamlutil"
)

// Heading level bounds.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// HeadingStyle is the output tag and classes for one Markdown heading level.
type HeadingStyle struct {
	Tag   string `yaml:"tag"`
	Class string `yaml:"class"`
}

// Style holds the CSS classes merged into each element. An empty field adds
// no class. Headings maps Markdown levels (1-6) to the emitted tag; levels
// without an entry keep their tag and classes.
type Style struct {
	Paragraph   string `yaml:"paragraph"`
	BulletList  string `yaml:"bulletList"`
	TaskList    string `yaml:"taskList"`
	OrderedList string `yaml:"orderedList"`
	ListItem    string `yaml:"listItem"`
	Blockquote  string `yaml:"blockquote"`
	Table       string `yaml:"table"`
	Thead       string `yaml:"thead"`
	Link        string `yaml:"link"`
	Strong      string `yaml:"strong"`
	Em          string `yaml:"em"`
	CodeInline  string `yaml:"codeInline"`
	// CodeBlock is used on <pre> for indented and fenced code.
	CodeBlock string `yaml:"codeBlock"`
	Image     string `yaml:"image"`
	// TableWrapper is the class of the <div> around every table.
	TableWrapper string `yaml:"tableWrapper"`

	Headings map[int]HeadingStyle `yaml:"headings"`
}

// DefaultStyle returns the Bootstrap 5 style.
func DefaultStyle() *Style {
	return &Style{
		Paragraph:    "mb-3",
		BulletList:   "mb-3",
		TaskList:     "contains-task-list list-unstyled mb-3",
		OrderedList:  "mb-3",
		ListItem:     "mb-1",
		Blockquote:   "blockquote border-start border-4 ps-3 text-muted",
		Table:        "table table-striped table-hover table-bordered",
		Thead:        "table-dark",
		Link:         "link-primary",
		Strong:       "fw-bold",
		Em:           "fst-italic",
		CodeInline:   "bg-light px-1 rounded",
		CodeBlock:    "bg-light p-3 rounded",
		Image:        "img-fluid",
		TableWrapper: "table-responsive",
		Headings: map[int]HeadingStyle{
			1: {Tag: "h3", Class: "fw-semibold mb-3"},
			2: {Tag: "h4", Class: "fw-semibold mb-3"},
			3: {Tag: "h5", Class: "fw-semibold mb-2"},
			4: {Tag: "h6", Class: "fw-semibold mb-2"},
		},
	}
}

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Validate checks heading levels and tag names.
func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil style", ErrInvalidStyle)
	}
	for level, h := range s.Headings {
		if level < MinHeadingLevel || level > MaxHeadingLevel {
			return fmt.Errorf("%w: heading level %d (must be %d-%d)", ErrInvalidStyle, level, MinHeadingLevel, MaxHeadingLevel)
		}
		if !tagNamePattern.MatchString(h.Tag) {
			return fmt.Errorf("%w: heading %d tag %q", ErrInvalidStyle, level, h.Tag)
		}
	}
	return nil
}

// config converts s into the walker tables. literalTasks enables the text
// prefix task-list check used when checkboxes are not parsed.
func (s *Style) config(literalTasks bool) styling.Config {
	headings := make(map[int]styling.Heading, len(s.Headings))
	for level, h := range s.Headings {
		headings[level] = styling.Heading{Tag: h.Tag, Class: h.Class}
	}
	return styling.Config{
		Open: map[token.Type]string{
			token.ParagraphOpen:   s.Paragraph,
			token.BulletListOpen:  s.BulletList,
			token.OrderedListOpen: s.OrderedList,
			token.ListItemOpen:    s.ListItem,
			token.BlockquoteOpen:  s.Blockquote,
			token.TableOpen:       s.Table,
			token.TheadOpen:       s.Thead,
			token.LinkOpen:        s.Link,
			token.StrongOpen:      s.Strong,
			token.EmOpen:          s.Em,
		},
		Leaf: map[token.Type]string{
			token.CodeInline: s.CodeInline,
			token.CodeBlock:  s.CodeBlock,
		},
		TaskList:           s.TaskList,
		Image:              s.Image,
		TableWrapper:       s.TableWrapper,
		Headings:           headings,
		LiteralTaskMarkers: literalTasks,
	}
}

// ParseStyle decodes a YAML style over DefaultStyle: keys present in data
// replace the defaults, and a headings key replaces the whole heading table.
// Unknown keys are rejected.
func ParseStyle(data []byte) (*Style, error) {
	s := DefaultStyle()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	defaults := s.Headings
	s.Headings = nil
	if err := yamlutil.UnmarshalStrict(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleParse, err)
	}
	if s.Headings == nil {
		s.Headings = defaults
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadStyle reads and decodes a YAML style file.
func LoadStyle(path string) (*Style, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided style path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, path)
		}
		return nil, fmt.Errorf("reading style %s: %w", path, err)
	}
	s, err := ParseStyle(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
