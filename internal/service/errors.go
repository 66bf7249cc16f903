package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError with operation context
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The protocol layer maps service errors to sanitized tool messages
var (
	// ErrDeckNotFound indicates the named deck does not exist in the collection.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound indicates the card does not exist or is not reviewable.
	ErrCardNotFound = errors.New("card not found")

	// ErrNoteTypeNotFound indicates the configured note type is missing
	// from the collection.
	ErrNoteTypeNotFound = errors.New("note type not found")

	// ErrInvalidEase indicates a review ease outside the 1-4 range was
	// rejected before reaching the external scheduler.
	ErrInvalidEase = errors.New("ease must be between 1 and 4")

	// ErrCollectionUnavailable indicates the host application cannot be
	// reached at all.
	ErrCollectionUnavailable = errors.New("collection unavailable")
)

// ServiceError wraps errors from the service layer with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "deck", "import")
	Service string
	// Operation is the operation that failed (e.g., "list_decks", "import_vocab")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
