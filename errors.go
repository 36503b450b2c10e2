package mdstyle

import (
	"errors"

	"github.com/alnah/go-mdstyle/internal/styling"
)

// Sentinel errors for library operations.
var (
	// ErrInternal wraps a panic recovered while processing a document.
	ErrInternal = errors.New("internal markdown processing error")

	// Style errors.
	ErrInvalidStyle  = errors.New("invalid style")
	ErrStyleNotFound = errors.New("style file not found")
	ErrStyleParse    = errors.New("style file parse failed")

	// Highlighting errors.
	ErrUnknownTheme = styling.ErrUnknownTheme
)
