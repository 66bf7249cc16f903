package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/store"
	"github.com/phrazzld/anki-mcp/internal/vocab"
)

// ImportSummary reports the outcome of one vocabulary import run.
type ImportSummary struct {
	RunID   string `json:"run_id"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}

// AnnotateStatus is the per-expression outcome of a sentence annotation.
type AnnotateStatus string

const (
	AnnotateUpdated   AnnotateStatus = "updated"
	AnnotateUnchanged AnnotateStatus = "unchanged"
	AnnotateNotFound  AnnotateStatus = "not_found"
)

// AnnotateResult is the outcome for a single expression.
type AnnotateResult struct {
	Expression string         `json:"expression"`
	Status     AnnotateStatus `json:"status"`
}

// AnnotateSummary reports the outcome of a sentence annotation run.
type AnnotateSummary struct {
	Updated  int              `json:"updated"`
	NotFound []string         `json:"not_found,omitempty"`
	Results  []AnnotateResult `json:"results"`
}

// ImportService provides bulk operations against Japanese vocabulary
// notes: CSV import and sample-sentence annotation.
type ImportService interface {
	// ImportVocab reads a vocabulary CSV and merges it into the named
	// deck: rows whose Expression matches an existing note update that
	// note, the rest become new notes. Bad rows and duplicate rejections
	// are counted as skipped, not fatal.
	ImportVocab(ctx context.Context, csvPath, deckName string, extraTags []string) (*ImportSummary, error)

	// AnnotateNotes appends sample sentences to the Reading field of the
	// notes whose Expression exactly matches a key of sentences.
	// Sentences already present in the field are not appended again.
	AnnotateNotes(ctx context.Context, deckName string, sentences map[string][]string) (*AnnotateSummary, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	deckStore store.DeckStore
	noteStore store.NoteStore
	noteType  string
	logger    *slog.Logger
}

// NewImportService creates a new ImportService targeting the given note
// type (model). It returns an error if any of the required dependencies
// are nil or the note type is empty.
func NewImportService(
	deckStore store.DeckStore,
	noteStore store.NoteStore,
	noteType string,
	logger *slog.Logger,
) (ImportService, error) {
	if deckStore == nil {
		return nil, domain.NewValidationError("deckStore", "cannot be nil", domain.ErrValidation)
	}
	if noteStore == nil {
		return nil, domain.NewValidationError("noteStore", "cannot be nil", domain.ErrValidation)
	}
	if strings.TrimSpace(noteType) == "" {
		return nil, domain.NewValidationError("noteType", "cannot be empty", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &importServiceImpl{
		deckStore: deckStore,
		noteStore: noteStore,
		noteType:  noteType,
		logger:    logger.With(slog.String("component", "import_service")),
	}, nil
}

// vocabQuery matches the notes the import pipeline owns: notes of the
// configured note type in the target deck.
func (s *importServiceImpl) vocabQuery(deckName string) string {
	return fmt.Sprintf("deck:%q note:%q", deckName, s.noteType)
}

// expressionQuery narrows vocabQuery to notes mentioning one expression.
// The match is still fuzzy on the host side, so callers must compare the
// Expression field of the returned notes.
func (s *importServiceImpl) expressionQuery(deckName, expression string) string {
	return fmt.Sprintf("%s %q", s.vocabQuery(deckName), expression)
}

// ImportVocab implements ImportService.ImportVocab
func (s *importServiceImpl) ImportVocab(ctx context.Context, csvPath, deckName string, extraTags []string) (*ImportSummary, error) {
	runID := uuid.New().String()
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("run_id", runID),
		slog.String("deck_name", deckName))

	log.Info("starting vocabulary import", slog.String("csv_path", csvPath))

	exists, err := s.deckStore.Exists(ctx, deckName)
	if err != nil {
		return nil, wrapStoreError("import", "import_vocab", "failed to check deck", err)
	}
	if !exists {
		return nil, NewServiceError("import", "import_vocab", "deck not found", ErrDeckNotFound)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Error("failed to open CSV file", slog.String("error", err.Error()))
		return nil, NewServiceError("import", "import_vocab", "failed to open CSV file", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := vocab.ReadVocabCSV(f, extraTags)
	if err != nil {
		log.Error("failed to parse CSV file", slog.String("error", err.Error()))
		return nil, NewServiceError("import", "import_vocab", "failed to parse CSV file", err)
	}

	existing, err := s.existingVocabNotes(ctx, deckName)
	if err != nil {
		return nil, wrapStoreError("import", "import_vocab", "failed to load existing notes", err)
	}

	summary := &ImportSummary{RunID: runID}
	for _, entry := range entries {
		note, err := domain.NewVocabNote(s.noteType, entry)
		if err != nil {
			log.Warn("skipping invalid vocabulary entry",
				slog.String("expression", entry.Expression),
				slog.String("error", err.Error()))
			summary.Skipped++
			continue
		}

		if prev, ok := existing[entry.Expression]; ok {
			note.ID = prev.ID
			if err := s.noteStore.UpdateNote(ctx, note); err != nil {
				log.Warn("failed to update note",
					slog.String("expression", entry.Expression),
					slog.Int64("note_id", prev.ID),
					slog.String("error", err.Error()))
				summary.Skipped++
				continue
			}
			summary.Updated++
			continue
		}

		if _, err := s.noteStore.AddNote(ctx, note, deckName); err != nil {
			// A missing note type fails every row the same way, so
			// there is no point continuing the run.
			if errors.Is(err, store.ErrNoteTypeNotFound) {
				return summary, NewServiceError("import", "import_vocab", "note type not found", ErrNoteTypeNotFound)
			}
			log.Warn("failed to add note",
				slog.String("expression", entry.Expression),
				slog.String("error", err.Error()))
			summary.Skipped++
			continue
		}
		summary.Added++
	}

	log.Info("vocabulary import complete",
		slog.Int("added", summary.Added),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped))
	return summary, nil
}

// existingVocabNotes loads the deck's notes of the configured note type
// keyed by their Expression field.
func (s *importServiceImpl) existingVocabNotes(ctx context.Context, deckName string) (map[string]domain.Note, error) {
	ids, err := s.noteStore.FindNotes(ctx, s.vocabQuery(deckName))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[string]domain.Note{}, nil
	}

	notes, err := s.noteStore.GetNotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	byExpression := make(map[string]domain.Note, len(notes))
	for _, note := range notes {
		if expr := note.Expression(); expr != "" {
			byExpression[expr] = note
		}
	}
	return byExpression, nil
}

// AnnotateNotes implements ImportService.AnnotateNotes
func (s *importServiceImpl) AnnotateNotes(ctx context.Context, deckName string, sentences map[string][]string) (*AnnotateSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("deck_name", deckName))

	exists, err := s.deckStore.Exists(ctx, deckName)
	if err != nil {
		return nil, wrapStoreError("import", "annotate_notes", "failed to check deck", err)
	}
	if !exists {
		return nil, NewServiceError("import", "annotate_notes", "deck not found", ErrDeckNotFound)
	}

	// Stable iteration order keeps logs and summaries deterministic.
	expressions := make([]string, 0, len(sentences))
	for expr := range sentences {
		expressions = append(expressions, expr)
	}
	sort.Strings(expressions)

	summary := &AnnotateSummary{}
	for _, expr := range expressions {
		status, updated, err := s.annotateExpression(ctx, deckName, expr, sentences[expr])
		if err != nil {
			return nil, wrapStoreError("import", "annotate_notes", "failed to annotate note", err)
		}

		summary.Updated += updated
		if status == AnnotateNotFound {
			summary.NotFound = append(summary.NotFound, expr)
		}
		summary.Results = append(summary.Results, AnnotateResult{Expression: expr, Status: status})
	}

	log.Info("sentence annotation complete",
		slog.Int("updated", summary.Updated),
		slog.Int("not_found", len(summary.NotFound)))
	return summary, nil
}

// annotateExpression appends the unseen sentences to the Reading field of
// every note whose Expression exactly matches expr. The same expression
// can back more than one note (subdecks, re-imports), so all exact
// matches are annotated. It returns the number of notes updated.
func (s *importServiceImpl) annotateExpression(ctx context.Context, deckName, expr string, sentences []string) (AnnotateStatus, int, error) {
	ids, err := s.noteStore.FindNotes(ctx, s.expressionQuery(deckName, expr))
	if err != nil {
		return "", 0, err
	}
	if len(ids) == 0 {
		return AnnotateNotFound, 0, nil
	}

	notes, err := s.noteStore.GetNotes(ctx, ids)
	if err != nil {
		return "", 0, err
	}

	matched := false
	updated := 0
	for _, note := range notes {
		if note.Expression() != expr {
			continue
		}
		matched = true

		reading := note.Fields[domain.FieldReading]
		var unseen []string
		for _, sentence := range sentences {
			if !strings.Contains(reading, sentence) {
				unseen = append(unseen, sentence)
			}
		}
		if len(unseen) == 0 {
			continue
		}

		annotated := reading + "\n\n" + strings.Join(unseen, "<br>- ")
		fields := map[string]string{domain.FieldReading: annotated}
		if err := s.noteStore.UpdateNoteFields(ctx, note.ID, fields); err != nil {
			return "", updated, err
		}
		updated++
	}

	switch {
	case updated > 0:
		return AnnotateUpdated, updated, nil
	case matched:
		return AnnotateUnchanged, 0, nil
	default:
		// The search matched by content, not by the Expression field.
		return AnnotateNotFound, 0, nil
	}
}
