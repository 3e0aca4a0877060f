package datev

import (
	"errors"
	"fmt"

	"mandatpro/pkg/models"
)

// Common export errors
var (
	// ErrInvalidDate is returned when a booking date cannot be read as a
	// calendar date.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidFieldValue is returned when a value cannot be placed in its
	// DATEV field without breaking the row layout.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrValidationFailed is returned when the record set has blocking
	// validation errors.
	ErrValidationFailed = errors.New("export blocked by validation errors")

	// ErrNoBookings is returned by callers that refuse to deliver a batch
	// without data rows.
	ErrNoBookings = errors.New("no bookings to export")
)

// EncodingError reports a booking that cannot be rendered into a row.
type EncodingError struct {
	// Kind and Index locate the source record (Index is 1-based).
	Kind  models.RecordKind
	Index int

	// Field is the DATEV caption of the offending field.
	Field string

	// Value is the input that could not be encoded.
	Value string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("datev: %s %d: %s %q: %v", e.Kind.Label(), e.Index, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("datev: %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ValidationFailedError carries the validation result that blocked an export.
type ValidationFailedError struct {
	Result ValidationResult
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%v: %d error(s), %d warning(s)", ErrValidationFailed, len(e.Result.Errors), len(e.Result.Warnings))
}

// Is matches ErrValidationFailed.
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}
