package styling

import "github.com/alnah/go-mdstyle/internal/token"

// Heading is the replacement tag and classes for one heading level.
type Heading struct {
	Tag   string
	Class string
}

// Config holds the class tables applied by the walker and the rule set.
// It is read-only once handed to NewWalker or NewRuleSet.
type Config struct {
	// Open maps opening token types to the classes merged onto them.
	// bullet_list_open is the plain list branch and link_open the base link
	// class; both have dedicated handlers.
	Open map[token.Type]string
	// Leaf maps self-contained token types to classes. The code_block entry
	// is also the <pre> class of fenced blocks.
	Leaf map[token.Type]string

	TaskList     string
	Image        string
	TableWrapper string

	Headings map[int]Heading

	// LiteralTaskMarkers enables the "[x]" / "[ ]" text prefix check for
	// task lists. Used when the parser does not emit checkbox tokens.
	LiteralTaskMarkers bool
}

// CodeBlockClass returns the class used on <pre> for code blocks and fences.
func (c *Config) CodeBlockClass() string {
	return c.Leaf[token.CodeBlock]
}
