package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// deckCardsURIPrefix and deckCardsURISuffix frame the deck name inside
// the anki://deck/{name}/cards resource URI.
const (
	decksURI           = "anki://decks"
	deckCardsTemplate  = "anki://deck/{name}/cards"
	deckCardsURIPrefix = "anki://deck/"
	deckCardsURISuffix = "/cards"
)

// DeckHandler exposes deck operations as MCP tools and resources.
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks service.DeckService, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecksTool describes the list_decks tool.
func (h *DeckHandler) ListDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List all decks in the collection with their card counts."),
	)
}

// HandleListDecks handles list_decks tool calls.
func (h *DeckHandler) HandleListDecks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decks, err := h.decks.ListDecks(ctx)
	if err != nil {
		return toolError(ctx, h.logger, "list_decks", err)
	}
	return mcp.NewToolResultText(formatDecks(decks)), nil
}

// CreateDeckTool describes the create_deck tool.
func (h *DeckHandler) CreateDeckTool() mcp.Tool {
	return mcp.NewTool("create_deck",
		mcp.WithDescription("Create a new deck. Creating a deck that already exists is a no-op."),
		mcp.WithString("deck_name",
			mcp.Required(),
			mcp.Description("Name of the deck to create. Use '::' to nest decks."),
		),
	)
}

// HandleCreateDeck handles create_deck tool calls.
func (h *DeckHandler) HandleCreateDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckName, err := req.RequireString("deck_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.decks.CreateDeck(ctx, deckName)
	if err != nil {
		return toolError(ctx, h.logger, "create_deck", err)
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("created deck via tool",
		slog.String("deck_name", deckName),
		slog.Int64("deck_id", id))
	return mcp.NewToolResultText(fmt.Sprintf("Created deck '%s'", deckName)), nil
}

// DecksResource describes the anki://decks resource.
func (h *DeckHandler) DecksResource() mcp.Resource {
	return mcp.NewResource(decksURI, "decks",
		mcp.WithResourceDescription("All decks in the collection with their card counts."),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleDecksResource reads the anki://decks resource.
func (h *DeckHandler) HandleDecksResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	decks, err := h.decks.ListDecks(ctx)
	if err != nil {
		return resourceError(ctx, h.logger, decksURI, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatDecks(decks),
		},
	}, nil
}

// DeckCardsResourceTemplate describes the anki://deck/{name}/cards
// resource template.
func (h *DeckHandler) DeckCardsResourceTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(deckCardsTemplate, "deck-cards",
		mcp.WithTemplateDescription("Questions of every card in one deck."),
		mcp.WithTemplateMIMEType("text/plain"),
	)
}

// HandleDeckCardsResource reads a deck's card listing.
func (h *DeckHandler) HandleDeckCardsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	deckName, err := deckNameFromURI(req.Params.URI)
	if err != nil {
		return resourceError(ctx, h.logger, req.Params.URI, err)
	}

	cards, err := h.decks.ListDeckCards(ctx, deckName)
	if err != nil {
		return resourceError(ctx, h.logger, req.Params.URI, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatDeckCards(deckName, cards),
		},
	}, nil
}

// deckNameFromURI extracts and unescapes the deck name from an
// anki://deck/{name}/cards URI.
func deckNameFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, deckCardsURIPrefix) || !strings.HasSuffix(uri, deckCardsURISuffix) {
		return "", fmt.Errorf("unexpected deck cards URI %q", uri)
	}
	escaped := strings.TrimSuffix(strings.TrimPrefix(uri, deckCardsURIPrefix), deckCardsURISuffix)
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("unescaping deck name from URI %q: %w", uri, err)
	}
	if name == "" {
		return "", fmt.Errorf("empty deck name in URI %q", uri)
	}
	return name, nil
}
