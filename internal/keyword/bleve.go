package keyword

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/gluco/internal/tfidf"
)

const (
	defaultFuzziness = 1
	maxFuzziness     = 2
	// idWidth zero-pads document IDs so sorting by _id follows corpus order.
	idWidth = 8
)

type questionDoc struct {
	Question string `json:"question"`
}

// QuestionIndex is an in-memory Bleve index over corpus questions.
// It is built once and only read afterwards.
type QuestionIndex struct {
	index     bleve.Index
	fuzziness int
}

// NewQuestionIndex indexes each question under its corpus row.
func NewQuestionIndex(questions []string, opts *SearchOptions) (*QuestionIndex, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("question", textFieldMapping)
	im.AddDocumentMapping("question", docMapping)
	im.DefaultType = "question"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}

	batch := index.NewBatch()
	for i, q := range questions {
		if err := batch.Index(docID(i), questionDoc{Question: q}); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index question %d: %w", i, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to commit question index: %w", err)
	}

	fuzziness := defaultFuzziness
	if opts != nil {
		fuzziness = opts.Fuzziness
	}
	if fuzziness < 0 {
		fuzziness = 0
	}
	if fuzziness > maxFuzziness {
		fuzziness = maxFuzziness
	}
	return &QuestionIndex{index: index, fuzziness: fuzziness}, nil
}

// Search returns up to limit questions related to query, best first, ties in corpus order.
// Exact term matches and terms within the edit distance both count.
func (q *QuestionIndex) Search(query string, limit int) ([]Result, error) {
	if limit <= 0 {
		return nil, nil
	}
	terms := tfidf.Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}
	queries := make([]blevequery.Query, 0, len(terms)+1)
	mq := bleve.NewMatchQuery(query)
	mq.SetField("question")
	queries = append(queries, mq)
	for _, term := range terms {
		if q.fuzziness == 0 {
			break
		}
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(q.fuzziness)
		fq.SetField("question")
		queries = append(queries, fq)
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(queries...))
	req.Size = limit
	req.SortBy([]string{"-_score", "_id"})
	results, err := q.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]Result, 0, len(results.Hits))
	for _, hit := range results.Hits {
		idx, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		out = append(out, Result{Index: idx, Score: hit.Score})
	}
	return out, nil
}

// Suggest returns the corpus rows of up to limit related questions.
func (q *QuestionIndex) Suggest(query string, limit int) ([]int, error) {
	results, err := q.Search(query, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]int, len(results))
	for i, r := range results {
		rows[i] = r.Index
	}
	return rows, nil
}

// DocCount returns the number of indexed questions.
func (q *QuestionIndex) DocCount() (uint64, error) {
	return q.index.DocCount()
}

// Close closes the Bleve index.
func (q *QuestionIndex) Close() error {
	return q.index.Close()
}

func docID(row int) string {
	return fmt.Sprintf("%0*d", idWidth, row)
}
