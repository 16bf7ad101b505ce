package store

import (
	"errors"
	"fmt"
)

// ErrCorruptCollection is returned alongside a usable default when a
// collection file exists but cannot be parsed. Callers should warn and
// carry on rather than silently dropping the file's contents.
var ErrCorruptCollection = errors.New("corrupt collection file")

// StorageError wraps failures while reading or writing a collection.
type StorageError struct {
	// Op is the operation that failed (e.g., "LoadClients", "SaveInvoices").
	Op string

	// Path is the file involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *StorageError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
