package ledger

import (
	"errors"
	"fmt"
)

// Common ledger errors
var (
	// ErrEmptyInvoice is returned when an invoice is created with no line
	// items in either category. Nothing is persisted in that case.
	ErrEmptyInvoice = errors.New("invoice has no line items")

	// ErrClientNotFound is returned when no client matches the given id or
	// name hint.
	ErrClientNotFound = errors.New("client not found")

	// ErrInvoiceNotFound is returned when no invoice matches the given id.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrClientDeleted is returned when an invoice references a client that
	// no longer exists. The invoice itself stays listable and viewable.
	ErrClientDeleted = errors.New("client referenced by invoice no longer exists")

	// ErrNegativeAmount is returned when a line item carries a negative
	// rate or quantity.
	ErrNegativeAmount = errors.New("line item amount must not be negative")
)

// ValidationError represents a rejected entity mutation. Validation happens
// before persistence, so a ValidationError means no state was written.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
