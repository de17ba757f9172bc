package corpus

import (
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/gluco/internal/models"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// loadSQLite reads the question and answer columns of opts.Table in rowid order.
// The database is opened read-only.
func loadSQLite(path string, opts Options) ([]models.QAEntry, error) {
	for _, ident := range []string{opts.Table, opts.QuestionColumn, opts.AnswerColumn} {
		if !identPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid SQLite identifier %q", ident)
		}
	}
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(`SELECT %q, %q FROM %q ORDER BY rowid`, opts.QuestionColumn, opts.AnswerColumn, opts.Table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query corpus table: %w", err)
	}
	defer rows.Close()

	var entries []models.QAEntry
	for rows.Next() {
		var q, a sql.NullString
		if err := rows.Scan(&q, &a); err != nil {
			return nil, err
		}
		entries = append(entries, models.QAEntry{Question: q.String, Answer: a.String})
	}
	return entries, rows.Err()
}
