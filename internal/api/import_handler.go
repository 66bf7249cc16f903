package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// ImportHandler exposes the vocabulary import pipeline as MCP tools.
type ImportHandler struct {
	imports     service.ImportService
	defaultDeck string
	logger      *slog.Logger
}

// NewImportHandler creates a new ImportHandler. defaultDeck is the deck
// update_notes_with_sentences targets when the client passes none.
func NewImportHandler(imports service.ImportService, defaultDeck string, logger *slog.Logger) *ImportHandler {
	if imports == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("import service cannot be nil for ImportHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ImportHandler{
		imports:     imports,
		defaultDeck: defaultDeck,
		logger:      logger.With(slog.String("component", "import_handler")),
	}
}

// ImportVocabTool describes the import_japanese_vocab tool.
func (h *ImportHandler) ImportVocabTool() mcp.Tool {
	return mcp.NewTool("import_japanese_vocab",
		mcp.WithDescription("Import Japanese vocabulary from a CSV file into a deck. "+
			"The CSV needs an Expression column; Reading, Meaning and Tags "+
			"(semicolon-separated) are optional. Readings are annotated with "+
			"furigana automatically. Rows matching an existing note's Expression "+
			"update that note instead of creating a duplicate."),
		mcp.WithString("csv_path",
			mcp.Required(),
			mcp.Description("Path to the CSV file on the server's filesystem."),
		),
		mcp.WithString("deck_name",
			mcp.Required(),
			mcp.Description("Name of the deck to import into."),
		),
		mcp.WithString("tags",
			mcp.Description("Additional comma-separated tags to add to every imported note."),
		),
	)
}

// HandleImportVocab handles import_japanese_vocab tool calls.
func (h *ImportHandler) HandleImportVocab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	csvPath, err := req.RequireString("csv_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deckName, err := req.RequireString("deck_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	extraTags := splitTags(req.GetString("tags", ""))

	summary, err := h.imports.ImportVocab(ctx, csvPath, deckName, extraTags)
	if err != nil {
		return toolError(ctx, h.logger, "import_japanese_vocab", err)
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("import run finished",
		slog.String("run_id", summary.RunID),
		slog.Int("added", summary.Added),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped))
	return mcp.NewToolResultText(formatImportSummary(summary)), nil
}

// UpdateNotesTool describes the update_notes_with_sentences tool.
func (h *ImportHandler) UpdateNotesTool() mcp.Tool {
	return mcp.NewTool("update_notes_with_sentences",
		mcp.WithDescription("Append sample sentences to existing Japanese vocabulary "+
			"notes. vocab_sentences maps each expression to a list of sentences; "+
			"sentences already present on a note are not added twice."),
		mcp.WithObject("vocab_sentences",
			mcp.Required(),
			mcp.Description("Object mapping vocabulary expressions to arrays of sample sentences."),
		),
		mcp.WithString("deck_name",
			mcp.Description("Deck to search in. Defaults to the configured vocabulary deck."),
		),
	)
}

// HandleUpdateNotes handles update_notes_with_sentences tool calls.
func (h *ImportHandler) HandleUpdateNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["vocab_sentences"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("vocab_sentences must be an object mapping expressions to sentence arrays"), nil
	}

	sentences, err := parseVocabSentences(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deckName := req.GetString("deck_name", h.defaultDeck)

	summary, err := h.imports.AnnotateNotes(ctx, deckName, sentences)
	if err != nil {
		return toolError(ctx, h.logger, "update_notes_with_sentences", err)
	}
	return mcp.NewToolResultText(formatAnnotateSummary(summary)), nil
}

// parseVocabSentences converts the raw JSON object argument into the
// expression-to-sentences map the import service expects.
func parseVocabSentences(raw map[string]any) (map[string][]string, error) {
	sentences := make(map[string][]string, len(raw))
	for expr, value := range raw {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("vocab_sentences[%q] must be an array of sentences", expr)
		}
		parsed := make([]string, 0, len(list))
		for _, item := range list {
			sentence, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("vocab_sentences[%q] must contain only strings", expr)
			}
			if sentence = strings.TrimSpace(sentence); sentence != "" {
				parsed = append(parsed, sentence)
			}
		}
		sentences[expr] = parsed
	}
	return sentences, nil
}

// splitTags splits a comma-separated tag string, dropping empties.
func splitTags(tags string) []string {
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
