package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// recentWindow is how far back the "recent" listings and the deck
// review history reach.
const recentWindow = 24 * time.Hour

// ReviewedCard pairs a card with its most recent review log entry.
type ReviewedCard struct {
	Card domain.Card

	// LastReview is nil when the revlog carries no entry for the card
	// (e.g. reviews done on another device that have not synced).
	LastReview *domain.Review
}

// CardReviewHistory pairs a card with its review log entries, most
// recent first.
type CardReviewHistory struct {
	Card    domain.Card
	Reviews []domain.Review
}

// ReviewService provides review-related operations: submitting review
// outcomes to the external scheduler and reading the review log.
type ReviewService interface {
	// ReviewCard feeds a review outcome (ease 1-4) to the external
	// scheduler. Returns ErrInvalidEase for out-of-range values and
	// ErrCardNotFound if the card does not exist or is not reviewable.
	ReviewCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error

	// CardHistory returns the review log of one card, most recent first.
	CardHistory(ctx context.Context, cardID int64) ([]domain.Review, error)

	// DeckReviewHistory returns the last 24 hours of reviews for every
	// card in the named deck.
	DeckReviewHistory(ctx context.Context, deckName string) ([]CardReviewHistory, error)

	// RecentlyReviewed returns the cards reviewed in the last 24 hours.
	RecentlyReviewed(ctx context.Context) ([]ReviewedCard, error)

	// RecentlyLearned returns the cards that graduated from the
	// learning queue in the last 24 hours.
	RecentlyLearned(ctx context.Context) ([]ReviewedCard, error)
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	deckStore   store.DeckStore
	cardStore   store.CardStore
	reviewStore store.ReviewStore
	logger      *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewReviewService creates a new ReviewService.
// It returns an error if any of the required dependencies are nil.
func NewReviewService(
	deckStore store.DeckStore,
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	logger *slog.Logger,
) (ReviewService, error) {
	if deckStore == nil {
		return nil, domain.NewValidationError("deckStore", "cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if reviewStore == nil {
		return nil, domain.NewValidationError("reviewStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		deckStore:   deckStore,
		cardStore:   cardStore,
		reviewStore: reviewStore,
		logger:      logger.With(slog.String("component", "review_service")),
		now:         time.Now,
	}, nil
}

// ReviewCard implements ReviewService.ReviewCard.
// The card ID and ease are validated here so the external scheduler never
// sees a non-positive ID or an out-of-range ease.
func (s *reviewServiceImpl) ReviewCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card := domain.Card{ID: cardID}
	if err := card.Validate(); err != nil {
		log.Warn("rejected review with invalid card ID",
			slog.Int64("card_id", cardID))
		return NewServiceError("review", "review_card", "invalid card ID", err)
	}

	if err := ease.Validate(); err != nil {
		log.Warn("rejected review with invalid ease",
			slog.Int64("card_id", cardID),
			slog.Int("ease", int(ease)))
		return NewServiceError("review", "review_card", "invalid ease", ErrInvalidEase)
	}

	if err := s.cardStore.AnswerCard(ctx, cardID, ease); err != nil {
		log.Error("failed to answer card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return wrapStoreError("review", "review_card", "failed to answer card", err)
	}

	log.Info("reviewed card",
		slog.Int64("card_id", cardID),
		slog.String("ease", ease.String()))
	return nil
}

// CardHistory implements ReviewService.CardHistory
func (s *reviewServiceImpl) CardHistory(ctx context.Context, cardID int64) ([]domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card := domain.Card{ID: cardID}
	if err := card.Validate(); err != nil {
		return nil, NewServiceError("review", "card_history", "invalid card ID", err)
	}

	byCard, err := s.reviewStore.ReviewsOfCards(ctx, []int64{cardID})
	if err != nil {
		log.Error("failed to load card history",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, wrapStoreError("review", "card_history", "failed to load review log", err)
	}

	reviews := byCard[cardID]
	log.Debug("loaded card history",
		slog.Int64("card_id", cardID),
		slog.Int("review_count", len(reviews)))
	return reviews, nil
}

// DeckReviewHistory implements ReviewService.DeckReviewHistory
func (s *reviewServiceImpl) DeckReviewHistory(ctx context.Context, deckName string) ([]CardReviewHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.deckStore.Exists(ctx, deckName)
	if err != nil {
		return nil, wrapStoreError("review", "deck_review_history", "failed to check deck", err)
	}
	if !exists {
		return nil, NewServiceError("review", "deck_review_history", "deck not found", ErrDeckNotFound)
	}

	cutoff := s.now().Add(-recentWindow)
	byCard, err := s.reviewStore.DeckReviewsSince(ctx, deckName, cutoff)
	if err != nil {
		log.Error("failed to load deck review history",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return nil, wrapStoreError("review", "deck_review_history", "failed to load review log", err)
	}
	if len(byCard) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(byCard))
	for id := range byCard {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cards, err := s.cardStore.GetCards(ctx, ids)
	if err != nil {
		return nil, wrapStoreError("review", "deck_review_history", "failed to load cards", err)
	}

	history := make([]CardReviewHistory, 0, len(cards))
	for _, card := range cards {
		history = append(history, CardReviewHistory{
			Card:    card,
			Reviews: byCard[card.ID],
		})
	}

	log.Debug("loaded deck review history",
		slog.String("deck_name", deckName),
		slog.Int("card_count", len(history)))
	return history, nil
}

// RecentlyReviewed implements ReviewService.RecentlyReviewed.
// It relies on the host application's search syntax: rated:1 matches
// cards answered in the last day.
func (s *reviewServiceImpl) RecentlyReviewed(ctx context.Context) ([]ReviewedCard, error) {
	return s.recentCards(ctx, "rated:1", "recently_reviewed")
}

// RecentlyLearned implements ReviewService.RecentlyLearned.
// A card counts as learned once it has been rated recently and carries
// a positive interval, i.e. it graduated from the learning queue.
func (s *reviewServiceImpl) RecentlyLearned(ctx context.Context) ([]ReviewedCard, error) {
	return s.recentCards(ctx, "rated:1 prop:ivl>0", "recently_learned")
}

// recentCards finds cards by search query and decorates them with their
// latest review log entry.
func (s *reviewServiceImpl) recentCards(ctx context.Context, query, op string) ([]ReviewedCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids, err := s.cardStore.FindCards(ctx, query)
	if err != nil {
		log.Error("failed to find recent cards",
			slog.String("error", err.Error()),
			slog.String("query", query))
		return nil, wrapStoreError("review", op, "failed to find cards", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cards, err := s.cardStore.GetCards(ctx, ids)
	if err != nil {
		return nil, wrapStoreError("review", op, "failed to load cards", err)
	}

	byCard, err := s.reviewStore.ReviewsOfCards(ctx, ids)
	if err != nil {
		return nil, wrapStoreError("review", op, "failed to load review log", err)
	}

	reviewed := make([]ReviewedCard, 0, len(cards))
	for _, card := range cards {
		rc := ReviewedCard{Card: card}
		if reviews := byCard[card.ID]; len(reviews) > 0 {
			latest := reviews[0]
			rc.LastReview = &latest
		}
		reviewed = append(reviewed, rc)
	}

	log.Debug("loaded recent cards",
		slog.String("query", query),
		slog.Int("card_count", len(reviewed)))
	return reviewed, nil
}
