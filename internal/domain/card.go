package domain

// Card represents a single reviewable card in the collection. A card is
// rendered from one note and belongs to exactly one deck.
//
// Question and Answer hold the rendered card faces as the host
// application produced them. Interval, Factor, Reps and Lapses are the
// external scheduler's state and are never modified here.
type Card struct {
	ID       int64  `json:"id"`
	NoteID   int64  `json:"note_id"`
	DeckName string `json:"deck_name"`
	Question string `json:"question"`
	Answer   string `json:"answer"`

	// Interval is the current review interval in days. Zero means the
	// card is still in the learning queue.
	Interval int `json:"interval"`

	// Due is the scheduler's raw due value. For review cards it is a
	// day number relative to the collection's creation date; for
	// learning cards its meaning depends on the queue.
	Due int64 `json:"due"`

	// Factor is the ease factor in permille (2500 = 250%).
	Factor int `json:"factor"`

	Reps   int `json:"reps"`
	Lapses int `json:"lapses"`
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID <= 0 {
		return NewValidationError("id", "must be a positive card ID", ErrInvalidID)
	}
	return nil
}

// FactorPercent returns the ease factor as a percentage (2500 -> 250.0).
func (c *Card) FactorPercent() float64 {
	return float64(c.Factor) / 10
}

// Learned reports whether the card has graduated from the learning queue,
// i.e. it has a positive review interval.
func (c *Card) Learned() bool {
	return c.Interval > 0
}
