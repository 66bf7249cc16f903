package ankiconnect

import (
	"context"
	"log/slog"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// CardStore implements the store.CardStore interface using the
// AnkiConnect endpoint as the backend.
type CardStore struct {
	client *Client
	logger *slog.Logger
}

// NewCardStore creates a new AnkiConnect-backed implementation of the
// CardStore interface. If logger is nil, a default logger will be used.
func NewCardStore(client *Client, logger *slog.Logger) *CardStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for CardStore")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		client: client,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// cardInfo is one entry of the cardsInfo result.
type cardInfo struct {
	CardID   int64  `json:"cardId"`
	Note     int64  `json:"note"`
	DeckName string `json:"deckName"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Interval int    `json:"interval"`
	Due      int64  `json:"due"`
	Factor   int    `json:"factor"`
	Reps     int    `json:"reps"`
	Lapses   int    `json:"lapses"`
}

// FindCards implements store.CardStore.FindCards.
func (s *CardStore) FindCards(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	err := s.client.invoke(ctx, "findCards", map[string]any{"query": query}, &ids)
	if err != nil {
		return nil, store.NewStoreError("card", "find", err)
	}

	s.logger.Debug("found cards",
		slog.String("query", query),
		slog.Int("card_count", len(ids)))
	return ids, nil
}

// GetCards implements store.CardStore.GetCards.
func (s *CardStore) GetCards(ctx context.Context, ids []int64) ([]domain.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var infos []cardInfo
	err := s.client.invoke(ctx, "cardsInfo", map[string]any{"cards": ids}, &infos)
	if err != nil {
		return nil, store.NewStoreError("card", "get", err)
	}

	cards := make([]domain.Card, 0, len(infos))
	for _, info := range infos {
		// AnkiConnect reports unknown IDs as zeroed entries.
		if info.CardID == 0 {
			return nil, store.NewStoreError("card", "get", store.ErrCardNotFound)
		}
		cards = append(cards, domain.Card{
			ID:       info.CardID,
			NoteID:   info.Note,
			DeckName: info.DeckName,
			Question: info.Question,
			Answer:   info.Answer,
			Interval: info.Interval,
			Due:      info.Due,
			Factor:   info.Factor,
			Reps:     info.Reps,
			Lapses:   info.Lapses,
		})
	}
	return cards, nil
}

// AnswerCard implements store.CardStore.AnswerCard.
// It relays the ease to the host application's scheduler; no scheduling
// state is computed or stored on this side.
func (s *CardStore) AnswerCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error {
	params := map[string]any{
		"answers": []map[string]any{
			{"cardId": cardID, "ease": int(ease)},
		},
	}

	var answered []bool
	if err := s.client.invoke(ctx, "answerCards", params, &answered); err != nil {
		return store.NewStoreError("card", "answer", err)
	}
	if len(answered) == 0 || !answered[0] {
		// The host app reports false for unknown cards and for cards
		// not currently in a reviewable state.
		return store.NewStoreError("card", "answer", store.ErrCardNotFound)
	}

	s.logger.Debug("answered card",
		slog.Int64("card_id", cardID),
		slog.String("ease", ease.String()))
	return nil
}
