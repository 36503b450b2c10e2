package mdparse

import (
	"strings"

	"github.com/alnah/go-mdstyle/internal/token"
	"github.com/alnah/go-mdstyle/internal/yamlutil"
)

const frontMatterFence = "---"

// splitFrontMatter detects a YAML block delimited by "---" lines at the very
// start of src. It returns the front_matter token and the remaining source, or
// nil and src unchanged when there is no complete block.
//
// The block is decoded into Meta when it is a YAML mapping. Invalid YAML still
// produces a token so the block never leaks into the rendered output.
func splitFrontMatter(src string) (*token.Token, string) {
	first, rest, ok := strings.Cut(src, "\n")
	if !ok || strings.TrimRight(first, " \t") != frontMatterFence {
		return nil, src
	}

	var body strings.Builder
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t") == frontMatterFence {
			tok := token.New(token.FrontMatter, "")
			tok.Content = body.String()
			tok.Meta = decodeFrontMatter(tok.Content)
			return tok, rest
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	return nil, src
}

func decodeFrontMatter(content string) map[string]any {
	values, err := yamlutil.DecodeMapping([]byte(content))
	if err != nil {
		return nil
	}
	return values
}
