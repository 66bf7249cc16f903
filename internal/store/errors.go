package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the collection. This is a generic version of the entity-specific
	// not found errors (e.g., ErrDeckNotFound, ErrCardNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a
	// duplicate of a unique entity (e.g., a note whose first field
	// already exists in the target deck).
	ErrDuplicate = errors.New("entity already exists")

	// ErrUnavailable is returned when the collection gateway cannot
	// reach the host application at all (Anki not running, or the
	// AnkiConnect add-on not installed).
	ErrUnavailable = errors.New("collection unavailable")

	// ErrInvalidEntity is returned when an entity fails validation
	// before being sent to the collection. Check the wrapped error for
	// specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrDeckNotFound indicates that the requested deck does not exist in the collection.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrCardNotFound indicates that the requested card does not exist in the collection.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrNoteNotFound indicates that the requested note does not exist in the collection.
	ErrNoteNotFound = fmt.Errorf("%w: note", ErrNotFound)

	// ErrNoteTypeNotFound indicates that the required note type (model)
	// is not configured in the collection.
	ErrNoteTypeNotFound = fmt.Errorf("%w: note type", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrDuplicateNote indicates that an equivalent note already exists
	// in the collection and the host application refused to add it.
	ErrDuplicateNote = fmt.Errorf("%w: note", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsUnavailableError checks if the error indicates the host application
// cannot be reached.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "deck", "note")
	Operation string // The operation that failed (e.g., "find", "add")
	Err       error  // The underlying error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store %s %s failed: %v", e.Entity, e.Operation, e.Err)
	}
	return fmt.Sprintf("store %s %s failed", e.Entity, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
