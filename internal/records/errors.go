package records

import (
	"errors"
	"fmt"
)

// Common source errors
var (
	// ErrSourceUnavailable is returned when a source cannot be reached or read.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrUnsupportedSource is returned for locators no source handles.
	ErrUnsupportedSource = errors.New("unsupported record source")

	// ErrSheetNotFound is returned when a workbook or spreadsheet has none of
	// the expected record sheets.
	ErrSheetNotFound = errors.New("record sheet not found")
)

// SourceError represents an error while loading records from a source
type SourceError struct {
	Op     string
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("records: %s %s: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("records: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is reports source errors as ErrSourceUnavailable unless they wrap a more
// specific sentinel.
func (e *SourceError) Is(target error) bool {
	if target != ErrSourceUnavailable {
		return false
	}
	return !errors.Is(e.Err, ErrUnsupportedSource) && !errors.Is(e.Err, ErrSheetNotFound)
}
