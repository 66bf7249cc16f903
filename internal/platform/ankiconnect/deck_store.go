package ankiconnect

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// DeckStore implements the store.DeckStore interface using the
// AnkiConnect endpoint as the backend.
type DeckStore struct {
	client *Client
	logger *slog.Logger
}

// NewDeckStore creates a new AnkiConnect-backed implementation of the
// DeckStore interface. If logger is nil, a default logger will be used.
func NewDeckStore(client *Client, logger *slog.Logger) *DeckStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for DeckStore")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		client: client,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// deckStats is the per-deck slice of the getDeckStats result.
type deckStats struct {
	DeckID      int64  `json:"deck_id"`
	Name        string `json:"name"`
	TotalInDeck int    `json:"total_in_deck"`
}

// List implements store.DeckStore.List.
// It combines deckNamesAndIds with getDeckStats to return every deck
// with its card count, sorted by name for a stable listing.
func (s *DeckStore) List(ctx context.Context) ([]domain.Deck, error) {
	var namesToIDs map[string]int64
	if err := s.client.invoke(ctx, "deckNamesAndIds", nil, &namesToIDs); err != nil {
		return nil, store.NewStoreError("deck", "list", err)
	}

	names := make([]string, 0, len(namesToIDs))
	for name := range namesToIDs {
		names = append(names, name)
	}
	sort.Strings(names)

	// getDeckStats keys its result by stringified deck ID.
	var stats map[string]deckStats
	err := s.client.invoke(ctx, "getDeckStats", map[string]any{"decks": names}, &stats)
	if err != nil {
		return nil, store.NewStoreError("deck", "list", err)
	}

	counts := make(map[int64]int, len(stats))
	for _, st := range stats {
		counts[st.DeckID] = st.TotalInDeck
	}

	decks := make([]domain.Deck, 0, len(names))
	for _, name := range names {
		id := namesToIDs[name]
		decks = append(decks, domain.Deck{
			ID:        id,
			Name:      name,
			CardCount: counts[id],
		})
	}

	s.logger.Debug("listed decks", slog.Int("deck_count", len(decks)))
	return decks, nil
}

// Exists implements store.DeckStore.Exists.
func (s *DeckStore) Exists(ctx context.Context, name string) (bool, error) {
	var namesToIDs map[string]int64
	if err := s.client.invoke(ctx, "deckNamesAndIds", nil, &namesToIDs); err != nil {
		return false, store.NewStoreError("deck", "exists", err)
	}
	_, ok := namesToIDs[name]
	return ok, nil
}

// CreateDeck implements store.DeckStore.CreateDeck.
// Creating an existing deck returns the existing deck's ID, matching
// the host application's createDeck semantics.
func (s *DeckStore) CreateDeck(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := s.client.invoke(ctx, "createDeck", map[string]any{"deck": name}, &id); err != nil {
		return 0, store.NewStoreError("deck", "create", err)
	}

	s.logger.Debug("created deck",
		slog.String("deck_name", name),
		slog.Int64("deck_id", id))
	return id, nil
}
