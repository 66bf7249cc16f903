package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// MockDeckStore mocks the store.DeckStore interface
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) List(ctx context.Context) ([]domain.Deck, error) {
	args := m.Called(ctx)
	decks, _ := args.Get(0).([]domain.Deck)
	return decks, args.Error(1)
}

func (m *MockDeckStore) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeckStore) CreateDeck(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockCardStore mocks the store.CardStore interface
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) FindCards(ctx context.Context, query string) ([]int64, error) {
	args := m.Called(ctx, query)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockCardStore) GetCards(ctx context.Context, ids []int64) ([]domain.Card, error) {
	args := m.Called(ctx, ids)
	cards, _ := args.Get(0).([]domain.Card)
	return cards, args.Error(1)
}

func (m *MockCardStore) AnswerCard(ctx context.Context, cardID int64, ease domain.ReviewEase) error {
	args := m.Called(ctx, cardID, ease)
	return args.Error(0)
}

// MockNoteStore mocks the store.NoteStore interface
type MockNoteStore struct {
	mock.Mock
}

func (m *MockNoteStore) FindNotes(ctx context.Context, query string) ([]int64, error) {
	args := m.Called(ctx, query)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockNoteStore) GetNotes(ctx context.Context, ids []int64) ([]domain.Note, error) {
	args := m.Called(ctx, ids)
	notes, _ := args.Get(0).([]domain.Note)
	return notes, args.Error(1)
}

func (m *MockNoteStore) AddNote(ctx context.Context, note *domain.Note, deckName string) (int64, error) {
	args := m.Called(ctx, note, deckName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteStore) UpdateNote(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteStore) UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error {
	args := m.Called(ctx, noteID, fields)
	return args.Error(0)
}

func (m *MockNoteStore) AddTags(ctx context.Context, noteIDs []int64, tags []string) error {
	args := m.Called(ctx, noteIDs, tags)
	return args.Error(0)
}

// MockReviewStore mocks the store.ReviewStore interface
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) ReviewsOfCards(
	ctx context.Context,
	cardIDs []int64,
) (map[int64][]domain.Review, error) {
	args := m.Called(ctx, cardIDs)
	byCard, _ := args.Get(0).(map[int64][]domain.Review)
	return byCard, args.Error(1)
}

func (m *MockReviewStore) DeckReviewsSince(
	ctx context.Context,
	deckName string,
	since time.Time,
) (map[int64][]domain.Review, error) {
	args := m.Called(ctx, deckName, since)
	byCard, _ := args.Get(0).(map[int64][]domain.Review)
	return byCard, args.Error(1)
}
