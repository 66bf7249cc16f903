package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// DeckService provides deck-related operations
type DeckService interface {
	// ListDecks returns every deck in the collection with its card count
	ListDecks(ctx context.Context) ([]domain.Deck, error)

	// CreateDeck creates a deck with the given name and returns its ID.
	// Creating an existing deck is idempotent.
	CreateDeck(ctx context.Context, name string) (int64, error)

	// ListDeckCards returns the cards of the named deck
	ListDeckCards(ctx context.Context, deckName string) ([]domain.Card, error)
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	logger *slog.Logger,
) (DeckService, error) {
	if deckStore == nil {
		return nil, domain.NewValidationError("deckStore", "cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "deck_service")),
	}, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decks, err := s.deckStore.List(ctx)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, wrapStoreError("deck", "list_decks", "failed to list decks", err)
	}

	log.Debug("listed decks", slog.Int("deck_count", len(decks)))
	return decks, nil
}

// CreateDeck implements DeckService.CreateDeck
func (s *deckServiceImpl) CreateDeck(ctx context.Context, name string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck := domain.Deck{Name: name}
	if err := deck.Validate(); err != nil {
		return 0, NewServiceError("deck", "create_deck", "invalid deck name", err)
	}

	id, err := s.deckStore.CreateDeck(ctx, name)
	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_name", name))
		return 0, wrapStoreError("deck", "create_deck", "failed to create deck", err)
	}

	log.Info("created deck",
		slog.String("deck_name", name),
		slog.Int64("deck_id", id))
	return id, nil
}

// ListDeckCards implements DeckService.ListDeckCards
func (s *deckServiceImpl) ListDeckCards(ctx context.Context, deckName string) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.deckStore.Exists(ctx, deckName)
	if err != nil {
		log.Error("failed to check deck existence",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return nil, wrapStoreError("deck", "list_deck_cards", "failed to check deck", err)
	}
	if !exists {
		return nil, NewServiceError("deck", "list_deck_cards", "deck not found", ErrDeckNotFound)
	}

	ids, err := s.cardStore.FindCards(ctx, deckQuery(deckName))
	if err != nil {
		log.Error("failed to find deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return nil, wrapStoreError("deck", "list_deck_cards", "failed to find cards", err)
	}

	cards, err := s.cardStore.GetCards(ctx, ids)
	if err != nil {
		log.Error("failed to load deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return nil, wrapStoreError("deck", "list_deck_cards", "failed to load cards", err)
	}

	log.Debug("listed deck cards",
		slog.String("deck_name", deckName),
		slog.Int("card_count", len(cards)))
	return cards, nil
}

// deckQuery builds an Anki search query scoped to one deck, quoting the
// name so deck names with spaces survive the search parser.
func deckQuery(deckName string) string {
	return fmt.Sprintf("deck:%q", deckName)
}

// wrapStoreError translates store sentinel errors into the service
// taxonomy, preserving the original for logging via the wrapped chain.
func wrapStoreError(svc, op, message string, err error) error {
	switch {
	case store.IsUnavailableError(err):
		return NewServiceError(svc, op, message, fmt.Errorf("%w: %w", ErrCollectionUnavailable, err))
	case store.IsNotFoundError(err):
		switch {
		case errors.Is(err, store.ErrDeckNotFound):
			return NewServiceError(svc, op, message, fmt.Errorf("%w: %w", ErrDeckNotFound, err))
		case errors.Is(err, store.ErrCardNotFound):
			return NewServiceError(svc, op, message, fmt.Errorf("%w: %w", ErrCardNotFound, err))
		case errors.Is(err, store.ErrNoteTypeNotFound):
			return NewServiceError(svc, op, message, fmt.Errorf("%w: %w", ErrNoteTypeNotFound, err))
		}
		return NewServiceError(svc, op, message, err)
	default:
		return NewServiceError(svc, op, message, err)
	}
}
