package render

import (
	"errors"
	"fmt"
)

// Common rendering errors
var (
	// ErrMissingField is returned when a structurally required field is
	// absent from the client, invoice or profile. Rendering aborts; the
	// persisted invoice record is unaffected.
	ErrMissingField = errors.New("missing required field")

	// ErrWriteFailed is returned when the artifact cannot be written to
	// disk.
	ErrWriteFailed = errors.New("failed to write invoice artifact")
)

// RenderError wraps failures while building or writing a document.
type RenderError struct {
	// Op is the operation that failed (e.g., "BuildLayout", "WritePDF").
	Op string

	// Field names the offending field when the failure is a missing field.
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("render: %s failed: field '%s': %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func missingField(op, field string) error {
	return &RenderError{Op: op, Field: field, Err: ErrMissingField}
}
