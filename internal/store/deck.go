package store

import (
	"context"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// DeckStore defines the interface for deck access.
// Version: 1.0
type DeckStore interface {
	// List returns every deck in the collection with its card count,
	// ordered the way the host application reports them.
	List(ctx context.Context) ([]domain.Deck, error)

	// Exists reports whether a deck with the given name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// CreateDeck creates a deck with the given name and returns its ID.
	// Creating a deck that already exists is not an error; the existing
	// deck's ID is returned, matching the host application's semantics.
	CreateDeck(ctx context.Context, name string) (int64, error)
}
