package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/store"
)

func newReviewService(
	t *testing.T,
	deckStore *MockDeckStore,
	cardStore *MockCardStore,
	reviewStore *MockReviewStore,
) ReviewService {
	t.Helper()
	svc, err := NewReviewService(deckStore, cardStore, reviewStore, nil)
	require.NoError(t, err, "Expected no error constructing the review service")
	return svc
}

func TestReviewService_ReviewCard(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		cardStore.On("AnswerCard", mock.Anything, int64(77), domain.EaseGood).Return(nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		err := svc.ReviewCard(ctx, 77, domain.EaseGood)
		require.NoError(t, err, "Expected no error reviewing card")
		cardStore.AssertExpectations(t)
	})

	t.Run("non-positive card ID never reaches the scheduler", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		for _, id := range []int64{0, -1} {
			err := svc.ReviewCard(ctx, id, domain.EaseGood)
			require.Error(t, err, "Expected error for card ID %d", id)
			assert.ErrorIs(t, err, domain.ErrInvalidID)
		}
		cardStore.AssertNotCalled(t, "AnswerCard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid ease never reaches the scheduler", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		for _, ease := range []domain.ReviewEase{0, 5, -1} {
			err := svc.ReviewCard(ctx, 77, ease)
			require.Error(t, err, "Expected error for ease %d", int(ease))
			assert.ErrorIs(t, err, ErrInvalidEase)
		}
		cardStore.AssertNotCalled(t, "AnswerCard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown card", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		cardStore.On("AnswerCard", mock.Anything, int64(404), domain.EaseAgain).
			Return(store.ErrCardNotFound)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		err := svc.ReviewCard(ctx, 404, domain.EaseAgain)
		require.Error(t, err, "Expected error for unknown card")
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestReviewService_CardHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns reviews most recent first", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		newer := domain.Review{CardID: 7, ReviewedAt: time.Unix(2000, 0), Ease: domain.EaseGood}
		older := domain.Review{CardID: 7, ReviewedAt: time.Unix(1000, 0), Ease: domain.EaseAgain}
		reviewStore.On("ReviewsOfCards", mock.Anything, []int64{7}).
			Return(map[int64][]domain.Review{7: {newer, older}}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		reviews, err := svc.CardHistory(ctx, 7)
		require.NoError(t, err, "Expected no error loading history")
		require.Len(t, reviews, 2)
		assert.True(t, reviews[0].ReviewedAt.After(reviews[1].ReviewedAt),
			"Expected most recent review first")
	})

	t.Run("card without reviews yields empty history", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		reviewStore.On("ReviewsOfCards", mock.Anything, []int64{8}).
			Return(map[int64][]domain.Review{}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		reviews, err := svc.CardHistory(ctx, 8)
		require.NoError(t, err)
		assert.Empty(t, reviews, "Expected empty history for unreviewed card")
	})

	t.Run("non-positive card ID never reaches the store", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		_, err := svc.CardHistory(ctx, 0)
		require.Error(t, err, "Expected error for card ID 0")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		reviewStore.AssertNotCalled(t, "ReviewsOfCards", mock.Anything, mock.Anything)
	})
}

func TestReviewService_DeckReviewHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("joins cards with their reviews", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		deckStore.On("Exists", mock.Anything, "Try! N3 Vocab").Return(true, nil)
		reviewStore.On("DeckReviewsSince", mock.Anything, "Try! N3 Vocab", mock.AnythingOfType("time.Time")).
			Return(map[int64][]domain.Review{
				3: {{CardID: 3, Ease: domain.EaseGood}},
				1: {{CardID: 1, Ease: domain.EaseHard}},
			}, nil)
		cardStore.On("GetCards", mock.Anything, []int64{1, 3}).Return([]domain.Card{
			{ID: 1, Question: "飲む"},
			{ID: 3, Question: "食べる"},
		}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		history, err := svc.DeckReviewHistory(ctx, "Try! N3 Vocab")
		require.NoError(t, err, "Expected no error loading deck history")
		require.Len(t, history, 2)
		assert.Equal(t, "飲む", history[0].Card.Question)
		require.Len(t, history[0].Reviews, 1)
		assert.Equal(t, domain.EaseHard, history[0].Reviews[0].Ease)
	})

	t.Run("unknown deck", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		deckStore.On("Exists", mock.Anything, "Nope").Return(false, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		_, err := svc.DeckReviewHistory(ctx, "Nope")
		require.Error(t, err, "Expected error for unknown deck")
		assert.ErrorIs(t, err, ErrDeckNotFound)
		reviewStore.AssertNotCalled(t, "DeckReviewsSince",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no recent reviews yields empty history", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		deckStore.On("Exists", mock.Anything, "Quiet").Return(true, nil)
		reviewStore.On("DeckReviewsSince", mock.Anything, "Quiet", mock.AnythingOfType("time.Time")).
			Return(map[int64][]domain.Review{}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		history, err := svc.DeckReviewHistory(ctx, "Quiet")
		require.NoError(t, err)
		assert.Empty(t, history, "Expected empty history when nothing was reviewed")
		cardStore.AssertNotCalled(t, "GetCards", mock.Anything, mock.Anything)
	})
}

func TestReviewService_RecentlyReviewed(t *testing.T) {
	ctx := context.Background()

	t.Run("decorates cards with their latest review", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}

		cardStore.On("FindCards", mock.Anything, "rated:1").Return([]int64{5, 6}, nil)
		cardStore.On("GetCards", mock.Anything, []int64{5, 6}).Return([]domain.Card{
			{ID: 5, Question: "訪ねる"},
			{ID: 6, Question: "宝くじ"},
		}, nil)
		latest := domain.Review{CardID: 5, ReviewedAt: time.Unix(2000, 0), Ease: domain.EaseEasy}
		reviewStore.On("ReviewsOfCards", mock.Anything, []int64{5, 6}).
			Return(map[int64][]domain.Review{
				5: {latest, {CardID: 5, ReviewedAt: time.Unix(1000, 0)}},
			}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		reviewed, err := svc.RecentlyReviewed(ctx)
		require.NoError(t, err, "Expected no error listing recent cards")
		require.Len(t, reviewed, 2)
		require.NotNil(t, reviewed[0].LastReview, "Expected a latest review for card 5")
		assert.Equal(t, domain.EaseEasy, reviewed[0].LastReview.Ease)
		assert.Nil(t, reviewed[1].LastReview,
			"Expected no review for a card absent from the revlog")
	})

	t.Run("nothing reviewed", func(t *testing.T) {
		deckStore := &MockDeckStore{}
		cardStore := &MockCardStore{}
		reviewStore := &MockReviewStore{}
		cardStore.On("FindCards", mock.Anything, "rated:1").Return([]int64{}, nil)

		svc := newReviewService(t, deckStore, cardStore, reviewStore)
		reviewed, err := svc.RecentlyReviewed(ctx)
		require.NoError(t, err)
		assert.Empty(t, reviewed, "Expected empty result when nothing was reviewed")
		cardStore.AssertNotCalled(t, "GetCards", mock.Anything, mock.Anything)
	})
}

func TestReviewService_RecentlyLearned(t *testing.T) {
	deckStore := &MockDeckStore{}
	cardStore := &MockCardStore{}
	reviewStore := &MockReviewStore{}

	cardStore.On("FindCards", mock.Anything, "rated:1 prop:ivl>0").Return([]int64{9}, nil)
	cardStore.On("GetCards", mock.Anything, []int64{9}).Return([]domain.Card{
		{ID: 9, Question: "息が止まる", Interval: 3},
	}, nil)
	reviewStore.On("ReviewsOfCards", mock.Anything, []int64{9}).
		Return(map[int64][]domain.Review{
			9: {{CardID: 9, Interval: 3, Ease: domain.EaseGood}},
		}, nil)

	svc := newReviewService(t, deckStore, cardStore, reviewStore)
	learned, err := svc.RecentlyLearned(context.Background())
	require.NoError(t, err, "Expected no error listing learned cards")
	require.Len(t, learned, 1)
	assert.True(t, learned[0].Card.Learned(), "Expected a graduated card")
	cardStore.AssertExpectations(t)
}
