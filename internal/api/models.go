package api

import (
	"fmt"
	"strings"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// timeLayout is the timestamp format used in client-facing text.
const timeLayout = "2006-01-02 15:04:05"

// formatDecks renders the deck list as one bullet per deck.
func formatDecks(decks []domain.Deck) string {
	if len(decks) == 0 {
		return "No decks found."
	}
	lines := make([]string, 0, len(decks))
	for _, deck := range decks {
		lines = append(lines, fmt.Sprintf("- %s (%d cards)", deck.Name, deck.CardCount))
	}
	return strings.Join(lines, "\n")
}

// formatDeckCards renders the question of every card in a deck.
func formatDeckCards(deckName string, cards []domain.Card) string {
	if len(cards) == 0 {
		return fmt.Sprintf("No cards found in deck '%s'.", deckName)
	}
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		lines = append(lines, "- "+card.Question)
	}
	return strings.Join(lines, "\n")
}

// formatReview renders one review log entry the way the card history
// output presents it.
func formatReview(rev domain.Review) string {
	return fmt.Sprintf(
		"Date: %s\n"+
			"Type: %s\n"+
			"Ease: %d\n"+
			"Interval: %d days\n"+
			"Ease Factor: %.1f%%\n"+
			"Study Time: %.1fs",
		rev.ReviewedAt.Format(timeLayout),
		rev.Type,
		rev.Ease,
		rev.Interval,
		rev.FactorPercent(),
		rev.TakenSeconds(),
	)
}

// formatCardHistory renders the full review log of one card.
func formatCardHistory(cardID int64, reviews []domain.Review) string {
	if len(reviews) == 0 {
		return fmt.Sprintf("No review history found for card %d", cardID)
	}
	parts := []string{fmt.Sprintf("Review history for card %d:", cardID)}
	for _, rev := range reviews {
		parts = append(parts, formatReview(rev)+"\n---")
	}
	return strings.Join(parts, "\n")
}

// formatDeckHistory renders a deck's last-24h review log grouped by card.
func formatDeckHistory(deckName string, history []service.CardReviewHistory) string {
	if len(history) == 0 {
		return fmt.Sprintf("No cards reviewed in deck '%s' in the past 24 hours", deckName)
	}

	parts := []string{fmt.Sprintf("Review history for deck '%s' in the past 24 hours:", deckName)}
	for _, entry := range history {
		parts = append(parts,
			fmt.Sprintf("\nCard ID: %d", entry.Card.ID),
			fmt.Sprintf("Question: %s", entry.Card.Question),
			fmt.Sprintf("Answer: %s", entry.Card.Answer),
			"Reviews:")
		for _, rev := range entry.Reviews {
			parts = append(parts, formatReview(rev))
		}
		parts = append(parts, "---")
	}
	return strings.Join(parts, "\n")
}

// formatReviewedCards renders the recently-reviewed listing.
func formatReviewedCards(reviewed []service.ReviewedCard) string {
	if len(reviewed) == 0 {
		return "No cards reviewed in the last 24 hours."
	}

	parts := make([]string, 0, len(reviewed))
	for _, rc := range reviewed {
		lastReviewed := "unknown"
		if rc.LastReview != nil {
			lastReviewed = rc.LastReview.ReviewedAt.Format(timeLayout)
		}
		parts = append(parts, fmt.Sprintf(
			"Deck: %s\n"+
				"Question: %s\n"+
				"Answer: %s\n"+
				"Last reviewed: %s\n"+
				"Times reviewed: %d\n"+
				"Ease: %.1f%%\n"+
				"---",
			rc.Card.DeckName,
			rc.Card.Question,
			rc.Card.Answer,
			lastReviewed,
			rc.Card.Reps,
			rc.Card.FactorPercent(),
		))
	}
	return strings.Join(parts, "\n")
}

// formatLearnedCards renders the recently-learned listing.
func formatLearnedCards(learned []service.ReviewedCard) string {
	if len(learned) == 0 {
		return "No cards learned in the last 24 hours."
	}

	parts := make([]string, 0, len(learned))
	for _, rc := range learned {
		learnedOn := "unknown"
		if rc.LastReview != nil {
			learnedOn = rc.LastReview.ReviewedAt.Format(timeLayout)
		}
		parts = append(parts, fmt.Sprintf(
			"Deck: %s\n"+
				"Question: %s\n"+
				"Answer: %s\n"+
				"Learned on: %s\n"+
				"Current interval: %d days\n"+
				"---",
			rc.Card.DeckName,
			rc.Card.Question,
			rc.Card.Answer,
			learnedOn,
			rc.Card.Interval,
		))
	}
	return strings.Join(parts, "\n")
}

// formatImportSummary renders a vocabulary import run summary.
func formatImportSummary(summary *service.ImportSummary) string {
	return fmt.Sprintf(
		"Import complete:\nNotes added: %d\nNotes updated: %d\nNotes skipped (errors): %d",
		summary.Added, summary.Updated, summary.Skipped)
}

// formatAnnotateSummary renders a sentence annotation run summary.
func formatAnnotateSummary(summary *service.AnnotateSummary) string {
	parts := []string{
		"Update complete:",
		fmt.Sprintf("Notes updated: %d", summary.Updated),
	}
	if len(summary.NotFound) > 0 {
		parts = append(parts, "Words not found: "+strings.Join(summary.NotFound, ", "))
	}
	for _, res := range summary.Results {
		var status string
		switch res.Status {
		case service.AnnotateUpdated:
			status = "Updated"
		case service.AnnotateUnchanged:
			status = "No changes needed"
		default:
			status = "Not found"
		}
		parts = append(parts, fmt.Sprintf("Vocabulary '%s': %s", res.Expression, status))
	}
	return strings.Join(parts, "\n")
}
