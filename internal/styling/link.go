package styling

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/alnah/go-mdstyle/internal/token"
)

// secureLink makes absolute http(s) links open in a new tab with
// rel="noopener noreferrer". Links with a target are left alone.
func secureLink(tok *token.Token) {
	href, _ := tok.AttrGet("href")
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return
	}
	if target, _ := tok.AttrGet("target"); target != "" {
		return
	}
	tok.AttrSet("target", "_blank")

	rel, _ := tok.AttrGet("rel")
	parts := treeset.NewWithStringComparator()
	for _, p := range strings.Fields(rel) {
		parts.Add(p)
	}
	if parts.Contains("noopener", "noreferrer") {
		return
	}
	parts.Add("noopener", "noreferrer")

	sorted := make([]string, 0, parts.Size())
	for _, v := range parts.Values() {
		sorted = append(sorted, v.(string))
	}
	tok.AttrSet("rel", strings.Join(sorted, " "))
}
