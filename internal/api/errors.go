package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/service"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// MapErrorToSafeMessage returns a sanitized, client-facing message for an
// error. Internal detail stays in the logs; the client only ever sees
// these messages.
func MapErrorToSafeMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrCollectionUnavailable),
		errors.Is(err, store.ErrUnavailable):
		return "Anki is not running or AnkiConnect is not reachable"

	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, service.ErrNoteTypeNotFound),
		errors.Is(err, store.ErrNoteTypeNotFound):
		return "Note type not found in the collection"

	case errors.Is(err, store.ErrNoteNotFound):
		return "Note not found"

	case errors.Is(err, store.ErrDuplicate):
		return "A note with this content already exists in the deck"

	case errors.Is(err, service.ErrInvalidEase),
		errors.Is(err, domain.ErrInvalidEase):
		return "Ease must be between 1 and 4"

	case errors.Is(err, domain.ErrInvalidID):
		return "Card ID must be a positive number"

	case errors.Is(err, domain.ErrDeckNameEmpty):
		return "Deck name cannot be empty"

	case errors.Is(err, domain.ErrEmptyContent):
		return "Card front and back cannot be empty"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// toolError logs the full error and returns a tool-result error carrying
// only the sanitized message.
func toolError(ctx context.Context, log *slog.Logger, operation string, err error) (*mcp.CallToolResult, error) {
	logger.FromContextOrDefault(ctx, log).Error("tool call failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return mcp.NewToolResultError(MapErrorToSafeMessage(err)), nil
}

// resourceError logs the full error and returns a protocol-level error
// with the sanitized message only.
func resourceError(ctx context.Context, log *slog.Logger, uri string, err error) ([]mcp.ResourceContents, error) {
	logger.FromContextOrDefault(ctx, log).Error("resource read failed",
		slog.String("uri", uri),
		slog.String("error", err.Error()))
	return nil, errors.New(MapErrorToSafeMessage(err))
}
