package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned for a format name other than csv or xlsx.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrMissingPath is returned when no destination was given.
	ErrMissingPath = errors.New("export path is required")
)

// DependencyError reports that an optional output backend is not available.
// The CSV path does not depend on any backend and keeps working.
type DependencyError struct {
	Backend string
	Hint    string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s backend unavailable: %s", e.Backend, e.Hint)
}
