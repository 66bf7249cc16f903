package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is zero or negative.
	ErrInvalidID = errors.New("invalid ID")

	// ErrDeckNameEmpty is returned when a deck name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrInvalidEase is returned when a review ease is outside 1-4.
	ErrInvalidEase = errors.New("ease must be between 1 and 4")

	// ErrEmptyContent is returned when required card content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrExpressionEmpty is returned when a vocabulary entry has no
	// expression. The expression is the reconciliation key for imports,
	// so an entry without one cannot be matched or created.
	ErrExpressionEmpty = errors.New("expression cannot be empty")
)

// ValidationError wraps a validation failure with the field that caused it.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed for " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
