package ankiconnect

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/anki-mcp/internal/domain"
	"github.com/phrazzld/anki-mcp/internal/store"
)

// NoteStore implements the store.NoteStore interface using the
// AnkiConnect endpoint as the backend.
type NoteStore struct {
	client *Client
	logger *slog.Logger
}

// NewNoteStore creates a new AnkiConnect-backed implementation of the
// NoteStore interface. If logger is nil, a default logger will be used.
func NewNoteStore(client *Client, logger *slog.Logger) *NoteStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for NoteStore")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NoteStore{
		client: client,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure NoteStore implements store.NoteStore interface
var _ store.NoteStore = (*NoteStore)(nil)

// noteInfo is one entry of the notesInfo result.
type noteInfo struct {
	NoteID    int64                `json:"noteId"`
	ModelName string               `json:"modelName"`
	Tags      []string             `json:"tags"`
	Fields    map[string]noteField `json:"fields"`
}

// noteField is one field value inside a notesInfo entry.
type noteField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// FindNotes implements store.NoteStore.FindNotes.
func (s *NoteStore) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	err := s.client.invoke(ctx, "findNotes", map[string]any{"query": query}, &ids)
	if err != nil {
		return nil, store.NewStoreError("note", "find", err)
	}

	s.logger.Debug("found notes",
		slog.String("query", query),
		slog.Int("note_count", len(ids)))
	return ids, nil
}

// GetNotes implements store.NoteStore.GetNotes.
func (s *NoteStore) GetNotes(ctx context.Context, ids []int64) ([]domain.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var infos []noteInfo
	err := s.client.invoke(ctx, "notesInfo", map[string]any{"notes": ids}, &infos)
	if err != nil {
		return nil, store.NewStoreError("note", "get", err)
	}

	notes := make([]domain.Note, 0, len(infos))
	for _, info := range infos {
		// AnkiConnect reports unknown IDs as zeroed entries.
		if info.NoteID == 0 {
			return nil, store.NewStoreError("note", "get", store.ErrNoteNotFound)
		}

		fields := make(map[string]string, len(info.Fields))
		for name, field := range info.Fields {
			fields[name] = field.Value
		}
		notes = append(notes, domain.Note{
			ID:        info.NoteID,
			ModelName: info.ModelName,
			Fields:    fields,
			Tags:      info.Tags,
		})
	}
	return notes, nil
}

// AddNote implements store.NoteStore.AddNote.
// Duplicate detection is delegated to the host application, scoped to
// the target deck.
func (s *NoteStore) AddNote(ctx context.Context, note *domain.Note, deckName string) (int64, error) {
	params := map[string]any{
		"note": map[string]any{
			"deckName":  deckName,
			"modelName": note.ModelName,
			"fields":    note.Fields,
			"tags":      note.Tags,
			"options": map[string]any{
				"allowDuplicate": false,
				"duplicateScope": "deck",
			},
		},
	}

	var id int64
	if err := s.client.invoke(ctx, "addNote", params, &id); err != nil {
		return 0, store.NewStoreError("note", "add", err)
	}
	if id == 0 {
		return 0, store.NewStoreError("note", "add", store.ErrDuplicateNote)
	}

	s.logger.Debug("added note",
		slog.Int64("note_id", id),
		slog.String("deck_name", deckName),
		slog.String("model_name", note.ModelName))
	return id, nil
}

// UpdateNote implements store.NoteStore.UpdateNote.
// Both fields and tags are replaced with the note's current values.
func (s *NoteStore) UpdateNote(ctx context.Context, note *domain.Note) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     note.ID,
			"fields": note.Fields,
			"tags":   note.Tags,
		},
	}
	if err := s.client.invoke(ctx, "updateNote", params, nil); err != nil {
		return store.NewStoreError("note", "update", err)
	}

	s.logger.Debug("updated note", slog.Int64("note_id", note.ID))
	return nil
}

// UpdateNoteFields implements store.NoteStore.UpdateNoteFields.
func (s *NoteStore) UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     noteID,
			"fields": fields,
		},
	}
	if err := s.client.invoke(ctx, "updateNoteFields", params, nil); err != nil {
		return store.NewStoreError("note", "update_fields", err)
	}

	s.logger.Debug("updated note fields",
		slog.Int64("note_id", noteID),
		slog.Int("field_count", len(fields)))
	return nil
}

// AddTags implements store.NoteStore.AddTags.
func (s *NoteStore) AddTags(ctx context.Context, noteIDs []int64, tags []string) error {
	if len(noteIDs) == 0 || len(tags) == 0 {
		return nil
	}

	params := map[string]any{
		"notes": noteIDs,
		"tags":  strings.Join(tags, " "),
	}
	if err := s.client.invoke(ctx, "addTags", params, nil); err != nil {
		return store.NewStoreError("note", "add_tags", err)
	}
	return nil
}
