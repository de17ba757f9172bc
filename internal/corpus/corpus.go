// Package corpus loads the question/answer table from CSV, Excel or SQLite sources.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/gluco/internal/models"
)

const (
	// DefaultQuestionColumn is the header of the question column.
	DefaultQuestionColumn = "Pertanyaan"
	// DefaultAnswerColumn is the header of the answer column.
	DefaultAnswerColumn = "Jawaban"
	// DefaultTable is the SQLite table read for .db and .sqlite sources.
	DefaultTable = "qa"
)

var (
	// ErrEmptyCorpus is returned when a source has a header but no rows.
	ErrEmptyCorpus = errors.New("corpus has no rows")
	// ErrMissingColumn is returned when a required column header is absent.
	ErrMissingColumn = errors.New("corpus column not found")
)

// Options names the columns (and, for SQLite, the table) to read. Zero values use the defaults.
type Options struct {
	QuestionColumn string
	AnswerColumn   string
	Table          string
}

func (o Options) withDefaults() Options {
	if o.QuestionColumn == "" {
		o.QuestionColumn = DefaultQuestionColumn
	}
	if o.AnswerColumn == "" {
		o.AnswerColumn = DefaultAnswerColumn
	}
	if o.Table == "" {
		o.Table = DefaultTable
	}
	return o
}

// Load reads the corpus at path, choosing the reader by file extension.
// Unknown extensions are read as CSV.
func Load(path string, opts Options) ([]models.QAEntry, error) {
	opts = opts.withDefaults()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	var (
		entries []models.QAEntry
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		entries, err = loadExcel(path, opts)
	case ".db", ".sqlite", ".sqlite3":
		entries, err = loadSQLite(path, opts)
	default:
		entries, err = loadCSV(path, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("load corpus %s: %w", path, ErrEmptyCorpus)
	}
	return entries, nil
}

// fromRows maps a header row plus data rows to entries. Short rows read missing cells as "".
func fromRows(header []string, rows [][]string, opts Options) ([]models.QAEntry, error) {
	qCol, err := columnIndex(header, opts.QuestionColumn)
	if err != nil {
		return nil, err
	}
	aCol, err := columnIndex(header, opts.AnswerColumn)
	if err != nil {
		return nil, err
	}
	entries := make([]models.QAEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.QAEntry{
			Question: cell(row, qCol),
			Answer:   cell(row, aCol),
		})
	}
	return entries, nil
}

func columnIndex(header []string, name string) (int, error) {
	want := strings.TrimSpace(name)
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %v)", ErrMissingColumn, name, header)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
