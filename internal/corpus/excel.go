package corpus

import (
	"fmt"

	"github.com/hyperjump/gluco/internal/models"
	"github.com/xuri/excelize/v2"
)

// loadExcel reads the first sheet; its first row is the header.
func loadExcel(path string, opts Options) ([]models.QAEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCorpus
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCorpus
	}
	return fromRows(rows[0], rows[1:], opts)
}
