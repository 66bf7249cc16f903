package store

import (
	"context"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// NoteStore defines the interface for note access and mutation.
// Version: 1.0
type NoteStore interface {
	// FindNotes returns the IDs of notes matching an Anki search query.
	// An empty result is not an error.
	FindNotes(ctx context.Context, query string) ([]int64, error)

	// GetNotes resolves note IDs into full notes with their fields and
	// tags. Returns ErrNoteNotFound if any of the IDs does not exist.
	GetNotes(ctx context.Context, ids []int64) ([]domain.Note, error)

	// AddNote creates a new note of the note's model in the given deck
	// and returns the assigned note ID.
	// Returns ErrDeckNotFound if the deck does not exist,
	// ErrNoteTypeNotFound if the model is not configured, and
	// ErrDuplicateNote if the host application rejects the note as a
	// duplicate.
	AddNote(ctx context.Context, note *domain.Note, deckName string) (int64, error)

	// UpdateNote replaces the fields and tags of an existing note.
	// Returns ErrNoteNotFound if the note does not exist.
	UpdateNote(ctx context.Context, note *domain.Note) error

	// UpdateNoteFields replaces only the given fields of an existing
	// note, leaving tags untouched.
	// Returns ErrNoteNotFound if the note does not exist.
	UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error

	// AddTags adds the given tags to a set of notes. Tags the notes
	// already carry are left as-is.
	AddTags(ctx context.Context, noteIDs []int64, tags []string) error
}
