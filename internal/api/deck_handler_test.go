package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/service"
)

func TestDeckHandler_HandleListDecks(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		decks := &MockDeckService{}
		decks.On("ListDecks", mock.Anything).Return([]domain.Deck{
			{ID: 1, Name: "Default", CardCount: 3},
			{ID: 2, Name: "Try! N3 Vocab", CardCount: 120},
		}, nil)

		h := NewDeckHandler(decks, nil)
		res, err := h.HandleListDecks(ctx, callToolRequest("list_decks", nil))
		require.NoError(t, err, "Tool handlers must not return protocol errors")
		assert.False(t, res.IsError)
		text := resultText(t, res)
		assert.Contains(t, text, "- Default (3 cards)")
		assert.Contains(t, text, "- Try! N3 Vocab (120 cards)")
	})

	t.Run("collection unavailable yields sanitized tool error", func(t *testing.T) {
		decks := &MockDeckService{}
		decks.On("ListDecks", mock.Anything).Return(nil, service.ErrCollectionUnavailable)

		h := NewDeckHandler(decks, nil)
		res, err := h.HandleListDecks(ctx, callToolRequest("list_decks", nil))
		require.NoError(t, err)
		assert.True(t, res.IsError, "Expected a tool-result error")
		assert.Equal(t, "Anki is not running or AnkiConnect is not reachable", resultText(t, res))
	})
}

func TestDeckHandler_HandleCreateDeck(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		decks := &MockDeckService{}
		decks.On("CreateDeck", mock.Anything, "Grammar").Return(int64(7), nil)

		h := NewDeckHandler(decks, nil)
		res, err := h.HandleCreateDeck(ctx, callToolRequest("create_deck", map[string]any{
			"deck_name": "Grammar",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "Created deck 'Grammar'", resultText(t, res))
		decks.AssertExpectations(t)
	})

	t.Run("missing deck_name argument", func(t *testing.T) {
		decks := &MockDeckService{}

		h := NewDeckHandler(decks, nil)
		res, err := h.HandleCreateDeck(ctx, callToolRequest("create_deck", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError, "Expected a tool-result error for missing argument")
		decks.AssertNotCalled(t, "CreateDeck", mock.Anything, mock.Anything)
	})
}

func TestDeckHandler_HandleDeckCardsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		decks := &MockDeckService{}
		decks.On("ListDeckCards", mock.Anything, "Try! N3 Vocab").Return([]domain.Card{
			{ID: 1, Question: "食べる"},
			{ID: 2, Question: "飲む"},
		}, nil)

		h := NewDeckHandler(decks, nil)
		contents, err := h.HandleDeckCardsResource(ctx,
			readResourceRequest("anki://deck/Try!%20N3%20Vocab/cards"))
		require.NoError(t, err, "Expected no error reading deck cards")
		text := resourceText(t, contents)
		assert.Contains(t, text, "- 食べる")
		assert.Contains(t, text, "- 飲む")
	})

	t.Run("unknown deck", func(t *testing.T) {
		decks := &MockDeckService{}
		decks.On("ListDeckCards", mock.Anything, "Nope").Return(nil, service.ErrDeckNotFound)

		h := NewDeckHandler(decks, nil)
		_, err := h.HandleDeckCardsResource(ctx, readResourceRequest("anki://deck/Nope/cards"))
		require.Error(t, err, "Expected a protocol error for unknown deck")
		assert.Equal(t, "Deck not found", err.Error(),
			"Resource errors must carry only the sanitized message")
	})
}

func TestDeckNameFromURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "anki://deck/Default/cards", want: "Default"},
		{uri: "anki://deck/Try!%20N3%20Vocab/cards", want: "Try! N3 Vocab"},
		{uri: "anki://deck//cards", wantErr: true},
		{uri: "anki://decks", wantErr: true},
		{uri: "anki://deck/Default", wantErr: true},
	}

	for _, tc := range tests {
		name, err := deckNameFromURI(tc.uri)
		if tc.wantErr {
			assert.Error(t, err, "Expected error for URI %q", tc.uri)
			continue
		}
		require.NoError(t, err, "Expected no error for URI %q", tc.uri)
		assert.Equal(t, tc.want, name)
	}
}
