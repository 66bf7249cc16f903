package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// MockDeckService mocks service.DeckService
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	args := m.Called(ctx)
	decks, _ := args.Get(0).([]domain.Deck)
	return decks, args.Error(1)
}

func (m *MockDeckService) CreateDeck(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeckService) ListDeckCards(ctx context.Context, deckName string) ([]domain.Card, error) {
	args := m.Called(ctx, deckName)
	cards, _ := args.Get(0).([]domain.Card)
	return cards, args.Error(1)
}

// MockCardService mocks service.CardService
type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) AddCard(ctx context.Context, deckName, front, back string) (int64, error) {
	args := m.Called(ctx, deckName, front, back)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewService mocks service.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ReviewCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error {
	args := m.Called(ctx, cardID, ease)
	return args.Error(0)
}

func (m *MockReviewService) CardHistory(ctx context.Context, cardID int64) ([]domain.Review, error) {
	args := m.Called(ctx, cardID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *MockReviewService) DeckReviewHistory(
	ctx context.Context,
	deckName string,
) ([]service.CardReviewHistory, error) {
	args := m.Called(ctx, deckName)
	history, _ := args.Get(0).([]service.CardReviewHistory)
	return history, args.Error(1)
}

func (m *MockReviewService) RecentlyReviewed(ctx context.Context) ([]service.ReviewedCard, error) {
	args := m.Called(ctx)
	reviewed, _ := args.Get(0).([]service.ReviewedCard)
	return reviewed, args.Error(1)
}

func (m *MockReviewService) RecentlyLearned(ctx context.Context) ([]service.ReviewedCard, error) {
	args := m.Called(ctx)
	learned, _ := args.Get(0).([]service.ReviewedCard)
	return learned, args.Error(1)
}

// MockImportService mocks service.ImportService
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportVocab(
	ctx context.Context,
	csvPath, deckName string,
	extraTags []string,
) (*service.ImportSummary, error) {
	args := m.Called(ctx, csvPath, deckName, extraTags)
	summary, _ := args.Get(0).(*service.ImportSummary)
	return summary, args.Error(1)
}

func (m *MockImportService) AnnotateNotes(
	ctx context.Context,
	deckName string,
	sentences map[string][]string,
) (*service.AnnotateSummary, error) {
	args := m.Called(ctx, deckName, sentences)
	summary, _ := args.Get(0).(*service.AnnotateSummary)
	return summary, args.Error(1)
}
