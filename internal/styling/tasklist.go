package styling

import (
	"strings"

	"github.com/alnah/go-mdstyle/internal/token"
)

// isTaskList reports whether a bullet list holds a task item. Only the first
// paragraph level of each item is inspected: list item, paragraph, inline.
// A checkbox token always matches; literal "[x]" / "[ ]" text only when
// literal is set.
func isTaskList(list *token.Token, literal bool) bool {
	for _, item := range list.Children {
		if item == nil || item.Type != token.ListItemOpen {
			continue
		}
		for _, para := range item.Children {
			if para == nil || para.Type != token.ParagraphOpen {
				continue
			}
			for _, inline := range para.Children {
				if inline == nil {
					continue
				}
				switch {
				case inline.Type == token.TaskCheckbox:
					return true
				case literal && inline.Type == token.Text && hasTaskMarker(inline.Content):
					return true
				}
			}
		}
	}
	return false
}

func hasTaskMarker(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[x]") || strings.HasPrefix(s, "[ ]")
}
