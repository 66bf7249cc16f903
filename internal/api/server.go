package api

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/anki-mcp/internal/service"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Services bundles the application services the MCP surface exposes.
type Services struct {
	Decks   service.DeckService
	Cards   service.CardService
	Reviews service.ReviewService
	Imports service.ImportService
}

// New wires the MCP server: it registers every tool, resource and prompt
// against the provided services. This is the composition root; no
// business logic lives here.
func New(svcs Services, defaultDeck string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		"anki-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	deckHandler := NewDeckHandler(svcs.Decks, logger)
	s.AddTool(deckHandler.ListDecksTool(), deckHandler.HandleListDecks)
	s.AddTool(deckHandler.CreateDeckTool(), deckHandler.HandleCreateDeck)
	s.AddResource(deckHandler.DecksResource(), deckHandler.HandleDecksResource)
	s.AddResourceTemplate(deckHandler.DeckCardsResourceTemplate(), deckHandler.HandleDeckCardsResource)

	cardHandler := NewCardHandler(svcs.Cards, logger)
	s.AddTool(cardHandler.AddCardTool(), cardHandler.HandleAddCard)

	reviewHandler := NewReviewHandler(svcs.Reviews, logger)
	s.AddTool(reviewHandler.ReviewCardTool(), reviewHandler.HandleReviewCard)
	s.AddTool(reviewHandler.CardHistoryTool(), reviewHandler.HandleCardHistory)
	s.AddTool(reviewHandler.DeckHistoryTool(), reviewHandler.HandleDeckHistory)
	s.AddResource(reviewHandler.RecentReviewedResource(), reviewHandler.HandleRecentReviewed)
	s.AddResource(reviewHandler.RecentLearnedResource(), reviewHandler.HandleRecentLearned)

	importHandler := NewImportHandler(svcs.Imports, defaultDeck, logger)
	s.AddTool(importHandler.ImportVocabTool(), importHandler.HandleImportVocab)
	s.AddTool(importHandler.UpdateNotesTool(), importHandler.HandleUpdateNotes)

	promptHandler := NewPromptHandler(logger)
	s.AddPrompt(promptHandler.CreateDeckPrompt(), promptHandler.HandleCreateDeckPrompt)
	s.AddPrompt(promptHandler.ReviewHistoryPrompt(), promptHandler.HandleReviewHistoryPrompt)
	s.AddPrompt(promptHandler.StudyVocabPrompt(), promptHandler.HandleStudyVocabPrompt)
	s.AddPrompt(promptHandler.VocabSentencesPrompt(), promptHandler.HandleVocabSentencesPrompt)

	return s
}

// serverInstructions tells the connected model how to use the server.
func serverInstructions() string {
	return `You are connected to a running Anki collection through AnkiConnect.

Resources:
- anki://decks: all decks with card counts
- anki://deck/{name}/cards: card questions for one deck
- anki://recent/reviewed: cards reviewed in the last 24 hours
- anki://recent/learned: cards that graduated from learning in the last 24 hours

Tools:
- list_decks / create_deck / add_card for basic collection management
- review_card submits a review outcome (ease 1-4) to Anki's own scheduler
- get_card_history / get_deck_review_history read the review log
- import_japanese_vocab bulk-imports a vocabulary CSV with automatic furigana
- update_notes_with_sentences appends sample sentences to existing vocabulary notes

Anki must be running with the AnkiConnect add-on for any of this to work.
Never invent card or deck IDs; read them from the resources or tool output first.`
}
