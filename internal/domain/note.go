package domain

import "strings"

// Note type (model) names in the host application. The integration only
// ever creates notes of these two types; everything else is read as-is.
const (
	// ModelBasic is the stock two-field note type used by add_card.
	ModelBasic = "Basic"

	// ModelJapanese is the note type the vocabulary import pipeline
	// targets. Its fields are Expression, Meaning and Reading.
	ModelJapanese = "Japanese (recognition)"
)

// Field names for the supported note types.
const (
	FieldFront      = "Front"
	FieldBack       = "Back"
	FieldExpression = "Expression"
	FieldMeaning    = "Meaning"
	FieldReading    = "Reading"
)

// Note represents a structured record with named fields underlying one or
// more cards. Fields are keyed by the note type's field names.
type Note struct {
	ID        int64             `json:"id"`
	ModelName string            `json:"model_name"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
}

// NewBasicNote creates an unsaved Basic note with the given front and back.
// Returns an error if either face is empty.
func NewBasicNote(front, back string) (*Note, error) {
	if strings.TrimSpace(front) == "" {
		return nil, NewValidationError("front", "cannot be empty", ErrEmptyContent)
	}
	if strings.TrimSpace(back) == "" {
		return nil, NewValidationError("back", "cannot be empty", ErrEmptyContent)
	}

	return &Note{
		ModelName: ModelBasic,
		Fields: map[string]string{
			FieldFront: front,
			FieldBack:  back,
		},
	}, nil
}

// NewVocabNote creates an unsaved vocabulary note of the given note type
// from an import entry. The note type must expose the Expression, Meaning
// and Reading fields; the entry's reading is expected to already carry
// furigana markup.
func NewVocabNote(modelName string, entry VocabEntry) (*Note, error) {
	if strings.TrimSpace(modelName) == "" {
		return nil, NewValidationError("modelName", "cannot be empty", ErrValidation)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return &Note{
		ModelName: modelName,
		Fields: map[string]string{
			FieldExpression: entry.Expression,
			FieldMeaning:    entry.Meaning,
			FieldReading:    entry.Reading,
		},
		Tags: entry.Tags,
	}, nil
}

// Expression returns the note's Expression field, or the empty string for
// notes that do not carry one.
func (n *Note) Expression() string {
	return n.Fields[FieldExpression]
}

// HasTag reports whether the note already carries the given tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// VocabEntry is one parsed vocabulary row destined for a Japanese note.
// Reading holds the furigana-annotated form, ready to be written to the
// note's Reading field.
type VocabEntry struct {
	Expression string   `json:"expression"`
	Meaning    string   `json:"meaning"`
	Reading    string   `json:"reading"`
	Tags       []string `json:"tags,omitempty"`
}

// Validate checks if the VocabEntry has valid data.
func (e *VocabEntry) Validate() error {
	if strings.TrimSpace(e.Expression) == "" {
		return ErrExpressionEmpty
	}
	return nil
}
