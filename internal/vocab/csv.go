package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/anki-mcp/internal/domain"
)

// Column headers the vocabulary CSV must use. Only Expression is
// mandatory; the other columns default to empty values when absent.
const (
	ColumnExpression = "Expression"
	ColumnReading    = "Reading"
	ColumnMeaning    = "Meaning"
	ColumnTags       = "Tags"
)

// ErrMissingExpressionColumn is returned when the CSV header has no
// Expression column. Without it no row can be reconciled against the
// collection.
var ErrMissingExpressionColumn = errors.New("CSV header is missing the Expression column")

// ReadVocabCSV parses vocabulary entries from a headered CSV stream.
//
// Expected columns are Expression (the Japanese word), Reading
// (furigana), Meaning and Tags (semicolon-separated). Field values are
// whitespace-trimmed, readings are furigana-annotated against the
// expression, and extraTags are appended to every entry's tag list.
// Rows with an empty Expression are skipped: they carry no
// reconciliation key.
func ReadVocabCSV(r io.Reader, extraTags []string) ([]domain.VocabEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingExpressionColumn
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[ColumnExpression]; !ok {
		return nil, ErrMissingExpressionColumn
	}

	var entries []domain.VocabEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row at line %d: %w", line, err)
		}

		expression := column(record, columns, ColumnExpression)
		if expression == "" {
			continue
		}

		reading := column(record, columns, ColumnReading)
		entry := domain.VocabEntry{
			Expression: expression,
			Meaning:    column(record, columns, ColumnMeaning),
			Reading:    AddFurigana(expression, reading),
			Tags:       mergeTags(column(record, columns, ColumnTags), extraTags),
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// column returns the trimmed value of a named column, or the empty
// string when the row is short or the column is absent.
func column(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// mergeTags combines the row's semicolon-separated tags with the
// caller-supplied extra tags, dropping empties.
func mergeTags(csvTags string, extraTags []string) []string {
	var tags []string
	for _, tag := range strings.Split(csvTags, ";") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	for _, tag := range extraTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
