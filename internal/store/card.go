package store

import (
	"context"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// CardStore defines the interface for card access and review submission.
// Version: 1.0
type CardStore interface {
	// FindCards returns the IDs of cards matching an Anki search query
	// (e.g. `deck:"Try! N3 Vocab"` or `rated:1 prop:ivl>0`). An empty
	// result is not an error.
	FindCards(ctx context.Context, query string) ([]int64, error)

	// GetCards resolves card IDs into full cards, including the
	// rendered question/answer and the scheduler's current state.
	// Returns ErrCardNotFound if any of the IDs does not exist.
	GetCards(ctx context.Context, ids []int64) ([]domain.Card, error)

	// AnswerCard feeds a review outcome to the external scheduler.
	// The ease must already be validated to lie within 1-4; the store
	// performs no scheduling of its own.
	// Returns ErrCardNotFound if the card does not exist or is not in a
	// reviewable state.
	AnswerCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error
}
