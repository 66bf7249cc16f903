package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/service"
)

const (
	recentReviewedURI = "anki://recent/reviewed"
	recentLearnedURI  = "anki://recent/learned"
)

// ReviewHandler exposes review submission and review-log reads as MCP
// tools and resources.
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review service cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// ReviewCardTool describes the review_card tool.
func (h *ReviewHandler) ReviewCardTool() mcp.Tool {
	return mcp.NewTool("review_card",
		mcp.WithDescription("Submit a review outcome for a card. "+
			"The ease is passed to Anki's scheduler: 1=again, 2=hard, 3=good, 4=easy."),
		mcp.WithNumber("card_id",
			mcp.Required(),
			mcp.Description("ID of the card being reviewed."),
		),
		mcp.WithNumber("ease",
			mcp.Required(),
			mcp.Description("Review outcome, 1 through 4."),
		),
	)
}

// HandleReviewCard handles review_card tool calls.
func (h *ReviewHandler) HandleReviewCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, err := req.RequireInt("card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ease, err := req.RequireInt("ease")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.reviews.ReviewCard(ctx, int64(cardID), domain.ReviewEase(ease)); err != nil {
		return toolError(ctx, h.logger, "review_card", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Card %d reviewed with ease %d", cardID, ease)), nil
}

// CardHistoryTool describes the get_card_history tool.
func (h *ReviewHandler) CardHistoryTool() mcp.Tool {
	return mcp.NewTool("get_card_history",
		mcp.WithDescription("Get the full review history of a card, most recent first."),
		mcp.WithNumber("card_id",
			mcp.Required(),
			mcp.Description("ID of the card."),
		),
	)
}

// HandleCardHistory handles get_card_history tool calls.
func (h *ReviewHandler) HandleCardHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, err := req.RequireInt("card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reviews, err := h.reviews.CardHistory(ctx, int64(cardID))
	if err != nil {
		return toolError(ctx, h.logger, "get_card_history", err)
	}
	return mcp.NewToolResultText(formatCardHistory(int64(cardID), reviews)), nil
}

// DeckHistoryTool describes the get_deck_review_history tool.
func (h *ReviewHandler) DeckHistoryTool() mcp.Tool {
	return mcp.NewTool("get_deck_review_history",
		mcp.WithDescription("Get the review history of every card in a deck for the past 24 hours."),
		mcp.WithString("deck_name",
			mcp.Required(),
			mcp.Description("Name of the deck."),
		),
	)
}

// HandleDeckHistory handles get_deck_review_history tool calls.
func (h *ReviewHandler) HandleDeckHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckName, err := req.RequireString("deck_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := h.reviews.DeckReviewHistory(ctx, deckName)
	if err != nil {
		return toolError(ctx, h.logger, "get_deck_review_history", err)
	}
	return mcp.NewToolResultText(formatDeckHistory(deckName, history)), nil
}

// RecentReviewedResource describes the anki://recent/reviewed resource.
func (h *ReviewHandler) RecentReviewedResource() mcp.Resource {
	return mcp.NewResource(recentReviewedURI, "recent-reviewed",
		mcp.WithResourceDescription("Cards reviewed in the last 24 hours."),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleRecentReviewed reads the anki://recent/reviewed resource.
func (h *ReviewHandler) HandleRecentReviewed(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	reviewed, err := h.reviews.RecentlyReviewed(ctx)
	if err != nil {
		return resourceError(ctx, h.logger, recentReviewedURI, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatReviewedCards(reviewed),
		},
	}, nil
}

// RecentLearnedResource describes the anki://recent/learned resource.
func (h *ReviewHandler) RecentLearnedResource() mcp.Resource {
	return mcp.NewResource(recentLearnedURI, "recent-learned",
		mcp.WithResourceDescription("Cards that graduated from the learning queue in the last 24 hours."),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleRecentLearned reads the anki://recent/learned resource.
func (h *ReviewHandler) HandleRecentLearned(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	learned, err := h.reviews.RecentlyLearned(ctx)
	if err != nil {
		return resourceError(ctx, h.logger, recentLearnedURI, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatLearnedCards(learned),
		},
	}, nil
}
