package layout

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when no group holds any entry.
var ErrEmptyInput = errors.New("nothing to render: no page entries in any group")

// InvalidLayoutError reports a configuration that leaves no room for content.
type InvalidLayoutError struct {
	Group      string
	Reason     string
	CellWidth  float64
	CellHeight float64
}

func (e *InvalidLayoutError) Error() string {
	if e.Group == "" {
		return "invalid layout: " + e.Reason
	}
	return fmt.Sprintf("invalid layout in group %q: %s", e.Group, e.Reason)
}

// MissingImageError reports an entry whose image the source does not hold.
type MissingImageError struct {
	Group      string
	DocumentID string
	PageIndex  int
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("group %q: no image for document %q page %d", e.Group, e.DocumentID, e.PageIndex+1)
}

// invalidf builds an InvalidLayoutError with a formatted reason.
func invalidf(format string, args ...any) *InvalidLayoutError {
	return &InvalidLayoutError{Reason: fmt.Sprintf(format, args...)}
}
