package store

import (
	"context"
	"time"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// ReviewStore defines the interface for review-log access.
// Version: 1.0
type ReviewStore interface {
	// ReviewsOfCards returns the review log entries for the given
	// cards, grouped by card ID with the most recent entry first.
	// Cards without reviews are simply absent from the result; an
	// empty input yields an empty result.
	ReviewsOfCards(ctx context.Context, cardIDs []int64) (map[int64][]domain.Review, error)

	// DeckReviewsSince returns review log entries recorded after the
	// cutoff for every card in the named deck, grouped by card ID with
	// the most recent entry first.
	// Returns ErrDeckNotFound if the deck does not exist.
	DeckReviewsSince(ctx context.Context, deckName string, since time.Time) (map[int64][]domain.Review, error)
}
