package domain

// Deck represents a named grouping of cards in the external flashcard
// application. The card count is a point-in-time snapshot taken when the
// deck list was read; the host application remains the source of truth.
type Deck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"card_count"`
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.Name == "" {
		return ErrDeckNameEmpty
	}
	return nil
}
