package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// CardService provides card-related operations
type CardService interface {
	// AddCard creates a Basic note with the given front and back in the
	// named deck and returns the new note's ID.
	AddCard(ctx context.Context, deckName, front, back string) (int64, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	deckStore store.DeckStore
	noteStore store.NoteStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	deckStore store.DeckStore,
	noteStore store.NoteStore,
	logger *slog.Logger,
) (CardService, error) {
	if deckStore == nil {
		return nil, domain.NewValidationError("deckStore", "cannot be nil", domain.ErrValidation)
	}
	if noteStore == nil {
		return nil, domain.NewValidationError("noteStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		deckStore: deckStore,
		noteStore: noteStore,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// AddCard implements CardService.AddCard
func (s *cardServiceImpl) AddCard(ctx context.Context, deckName, front, back string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := domain.NewBasicNote(front, back)
	if err != nil {
		return 0, NewServiceError("card", "add_card", "invalid card content", err)
	}

	exists, err := s.deckStore.Exists(ctx, deckName)
	if err != nil {
		log.Error("failed to check deck existence",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return 0, wrapStoreError("card", "add_card", "failed to check deck", err)
	}
	if !exists {
		return 0, NewServiceError("card", "add_card", "deck not found", ErrDeckNotFound)
	}

	id, err := s.noteStore.AddNote(ctx, note, deckName)
	if err != nil {
		log.Error("failed to add card",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return 0, wrapStoreError("card", "add_card", "failed to add card", err)
	}

	log.Info("added card",
		slog.String("deck_name", deckName),
		slog.Int64("note_id", id))
	return id, nil
}
