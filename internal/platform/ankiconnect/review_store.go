package ankiconnect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// ReviewStore implements the store.ReviewStore interface using the
// AnkiConnect endpoint as the backend. Review log entries are read
// through AnkiConnect's revlog actions; the log itself stays in the
// collection file.
type ReviewStore struct {
	client *Client
	logger *slog.Logger
}

// NewReviewStore creates a new AnkiConnect-backed implementation of the
// ReviewStore interface. If logger is nil, a default logger will be used.
func NewReviewStore(client *Client, logger *slog.Logger) *ReviewStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for ReviewStore")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStore{
		client: client,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure ReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*ReviewStore)(nil)

// reviewEntry is one revlog row from the getReviewsOfCards result.
type reviewEntry struct {
	ID       int64 `json:"id"` // review timestamp, epoch ms
	Ease     int   `json:"ease"`
	Interval int   `json:"ivl"`
	LastIvl  int   `json:"lastIvl"`
	Factor   int   `json:"factor"`
	Time     int64 `json:"time"` // answer duration, ms
	Type     int   `json:"type"`
}

// ReviewsOfCards implements store.ReviewStore.ReviewsOfCards.
// Entries come back most recent first within each card.
func (s *ReviewStore) ReviewsOfCards(ctx context.Context, cardIDs []int64) (map[int64][]domain.Review, error) {
	if len(cardIDs) == 0 {
		return map[int64][]domain.Review{}, nil
	}

	// getReviewsOfCards keys its result by stringified card ID.
	cards := make([]string, 0, len(cardIDs))
	for _, id := range cardIDs {
		cards = append(cards, strconv.FormatInt(id, 10))
	}

	var result map[string][]reviewEntry
	err := s.client.invoke(ctx, "getReviewsOfCards", map[string]any{"cards": cards}, &result)
	if err != nil {
		return nil, store.NewStoreError("review", "reviews_of_cards", err)
	}

	byCard := make(map[int64][]domain.Review, len(result))
	total := 0
	for key, entries := range result {
		cardID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, store.NewStoreError(
				"review", "reviews_of_cards",
				fmt.Errorf("unexpected card key %q", key))
		}
		if len(entries) == 0 {
			continue
		}

		reviews := make([]domain.Review, 0, len(entries))
		for _, e := range entries {
			reviews = append(reviews, domain.Review{
				CardID:       cardID,
				ReviewedAt:   time.UnixMilli(e.ID),
				Ease:         domain.ReviewEase(e.Ease),
				Interval:     e.Interval,
				LastInterval: e.LastIvl,
				Factor:       e.Factor,
				TakenMillis:  e.Time,
				Type:         domain.ReviewType(e.Type),
			})
		}

		// The revlog is stored oldest first.
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].ReviewedAt.After(reviews[j].ReviewedAt)
		})
		byCard[cardID] = reviews
		total += len(reviews)
	}

	s.logger.Debug("fetched card reviews",
		slog.Int("card_count", len(cardIDs)),
		slog.Int("review_count", total))
	return byCard, nil
}

// DeckReviewsSince implements store.ReviewStore.DeckReviewsSince.
//
// cardReviews returns raw revlog rows as 9-element arrays:
// [reviewTime, cardID, usn, buttonPressed, newInterval, previousInterval,
// newFactor, reviewDuration, reviewType].
func (s *ReviewStore) DeckReviewsSince(
	ctx context.Context,
	deckName string,
	since time.Time,
) (map[int64][]domain.Review, error) {
	params := map[string]any{
		"deck":    deckName,
		"startID": since.UnixMilli(),
	}

	var rows [][]int64
	if err := s.client.invoke(ctx, "cardReviews", params, &rows); err != nil {
		return nil, store.NewStoreError("review", "deck_reviews", err)
	}

	byCard := make(map[int64][]domain.Review)
	for _, row := range rows {
		if len(row) < 9 {
			return nil, store.NewStoreError(
				"review", "deck_reviews",
				fmt.Errorf("malformed revlog row with %d columns", len(row)))
		}
		review := domain.Review{
			CardID:       row[1],
			ReviewedAt:   time.UnixMilli(row[0]),
			Ease:         domain.ReviewEase(row[3]),
			Interval:     int(row[4]),
			LastInterval: int(row[5]),
			Factor:       int(row[6]),
			TakenMillis:  row[7],
			Type:         domain.ReviewType(row[8]),
		}
		byCard[review.CardID] = append(byCard[review.CardID], review)
	}

	// Most recent first within each card.
	for id := range byCard {
		reviews := byCard[id]
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].ReviewedAt.After(reviews[j].ReviewedAt)
		})
		byCard[id] = reviews
	}

	s.logger.Debug("fetched deck reviews",
		slog.String("deck_name", deckName),
		slog.Int("card_count", len(byCard)),
		slog.Int("review_count", len(rows)))
	return byCard, nil
}
