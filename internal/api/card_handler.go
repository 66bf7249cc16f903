package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// CardHandler exposes card creation as an MCP tool.
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card service cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// AddCardTool describes the add_card tool.
func (h *CardHandler) AddCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Add a new Basic card (front/back) to a deck."),
		mcp.WithString("deck_name",
			mcp.Required(),
			mcp.Description("Name of the deck to add the card to."),
		),
		mcp.WithString("front",
			mcp.Required(),
			mcp.Description("Front side of the card (the question)."),
		),
		mcp.WithString("back",
			mcp.Required(),
			mcp.Description("Back side of the card (the answer)."),
		),
	)
}

// HandleAddCard handles add_card tool calls.
func (h *CardHandler) HandleAddCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckName, err := req.RequireString("deck_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	front, err := req.RequireString("front")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	back, err := req.RequireString("back")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	noteID, err := h.cards.AddCard(ctx, deckName, front, back)
	if err != nil {
		return toolError(ctx, h.logger, "add_card", err)
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("added card via tool",
		slog.String("deck_name", deckName),
		slog.Int64("note_id", noteID))
	return mcp.NewToolResultText(fmt.Sprintf("Added new card to deck '%s'", deckName)), nil
}
