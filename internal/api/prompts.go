package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
)

// PromptHandler serves the study-workflow prompts.
type PromptHandler struct {
	logger *slog.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(logger *slog.Logger) *PromptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PromptHandler{
		logger: logger.With(slog.String("component", "prompt_handler")),
	}
}

// CreateDeckPrompt describes the create_deck prompt.
func (h *PromptHandler) CreateDeckPrompt() mcp.Prompt {
	return mcp.NewPrompt("create_deck",
		mcp.WithPromptDescription("Guide the client through creating and filling a new deck."),
		mcp.WithArgument("deck_name",
			mcp.ArgumentDescription("Name of the deck to create."),
			mcp.RequiredArgument(),
		),
	)
}

// HandleCreateDeckPrompt handles create_deck prompt requests.
func (h *PromptHandler) HandleCreateDeckPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	deckName := req.Params.Arguments["deck_name"]
	if deckName == "" {
		return nil, fmt.Errorf("deck_name argument is required")
	}

	text := fmt.Sprintf(`Please help create a new deck named '%s'.
You can use the following tools:
- create_deck: Create the deck
- add_card: Add cards to the deck
- list_decks: View existing decks
`, deckName)

	return mcp.NewGetPromptResult(
		"Create a new deck",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// ReviewHistoryPrompt describes the review_history prompt.
func (h *PromptHandler) ReviewHistoryPrompt() mcp.Prompt {
	return mcp.NewPrompt("review_history",
		mcp.WithPromptDescription("Get help analyzing review history."),
	)
}

// HandleReviewHistoryPrompt handles review_history prompt requests.
func (h *PromptHandler) HandleReviewHistoryPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	const text = `I can help you analyze your review history.
Available resources:
- anki://recent/reviewed: View cards reviewed in the last 24 hours
- anki://recent/learned: View cards learned in the last 24 hours

Available tools:
- get_card_history: Get detailed review history for a specific card
- get_deck_review_history: Get the last 24 hours of reviews for a whole deck
`

	return mcp.NewGetPromptResult(
		"Analyze review history",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// StudyVocabPrompt describes the study_japanese_vocab prompt.
func (h *PromptHandler) StudyVocabPrompt() mcp.Prompt {
	return mcp.NewPrompt("study_japanese_vocab",
		mcp.WithPromptDescription("Create fill-in-the-blank practice from recently reviewed vocabulary."),
	)
}

// HandleStudyVocabPrompt handles study_japanese_vocab prompt requests.
func (h *PromptHandler) HandleStudyVocabPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	const text = `Look through the review history vocab list in the last 24 hours.
They are all Japanese words for N3 level. Create some fill-in-the-blank sentences
to help me memorize them.

Example Vocab:
- 食べる

Example Sample Sentence:
- おはよう。ご飯を＿＿＿か。

Rules:
0. List all the vocabs in the review history in its original form as options to choose from.
1. Mix up the words in fill in the blanks
2. For each new vocab, create 2 sentences.
3. Mix up the order of the sentences
4. Use only Japanese to reply and create the sentences.
5. Do not provide the answer to the user.

Available resources:
- anki://recent/reviewed: View cards reviewed in the last 24 hours.
勉強が始めましょう！
`

	return mcp.NewGetPromptResult(
		"Practice recently reviewed vocabulary",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// VocabSentencesPrompt describes the vocab_sentences_json prompt.
func (h *PromptHandler) VocabSentencesPrompt() mcp.Prompt {
	return mcp.NewPrompt("vocab_sentences_json",
		mcp.WithPromptDescription("Produce a JSON mapping of recently reviewed vocabulary to sample sentences."),
	)
}

// HandleVocabSentencesPrompt handles vocab_sentences_json prompt requests.
func (h *PromptHandler) HandleVocabSentencesPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	const text = `Create a JSON dictionary that maps Japanese vocabulary to lists of sample sentences.

Example Input Vocab:
宝くじ
息が止まる
シロイルカ
訪ねる
海外研修

Example Output:
{
    "宝くじ": ["宝くじに当たった夢を見ました。"],
    "息が止まる": ["驚いて息が止まりそうになりました。"],
    "シロイルカ": ["水族館でシロイルカを見ました。"],
    "訪ねる": ["先生のお宅を訪ねました。"],
    "海外研修": ["会社は社員に海外研修の機会を与えています。"]
}

Rules:
1. Return a valid JSON dictionary where each value is a list of strings
2. Each key should be a vocabulary word
3. Each value should be a list containing one or more natural Japanese sentences using that word
4. Sentences should provide clear context for the word usage
5. Use polite Japanese (です/ます form) for sentences
6. Include only reviewed vocabulary from the last 24 hours

Available resources:
- anki://recent/reviewed: View cards reviewed in the last 24 hours

The result can be passed to the update_notes_with_sentences tool.
`

	return mcp.NewGetPromptResult(
		"Map reviewed vocabulary to sample sentences",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
