package styling

import (
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/alnah/go-mdstyle/internal/token"
)

// MergeClass joins classes onto the class attribute of tok, creating it when
// missing, and drops repeated entries keeping the first occurrence of each.
// The attribute is only rewritten when deduplication changes it.
func MergeClass(tok *token.Token, classes string) {
	tok.AttrJoin("class", classes)
	current, _ := tok.AttrGet("class")
	if current == "" {
		return
	}

	seen := linkedhashset.New()
	for _, c := range strings.Fields(current) {
		seen.Add(c)
	}
	parts := make([]string, 0, seen.Size())
	for _, v := range seen.Values() {
		parts = append(parts, v.(string))
	}

	if uniq := strings.Join(parts, " "); uniq != current {
		tok.AttrSet("class", uniq)
	}
}
