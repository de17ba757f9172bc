package vector

import (
	"fmt"
	"sort"
)

// MemoryIndex is an ordered, read-only set of normalized rows searched by brute-force inner product.
// Row order is significant: ties always resolve to the lowest row index.
type MemoryIndex struct {
	rows []Sparse
}

// Result is a single scored row.
type Result struct {
	Index int
	Score float64 // cosine similarity in [0, 1]
}

// NewMemoryIndex copies rows into a new index. Rows are expected to be L2-normalized or zero.
func NewMemoryIndex(rows []Sparse) (*MemoryIndex, error) {
	out := make([]Sparse, len(rows))
	for i, r := range rows {
		if len(r.Indices) != len(r.Values) {
			return nil, fmt.Errorf("row %d: indices and values length mismatch", i)
		}
		for k := 1; k < len(r.Indices); k++ {
			if r.Indices[k] <= r.Indices[k-1] {
				return nil, fmt.Errorf("row %d: indices not strictly increasing", i)
			}
		}
		out[i] = Sparse{
			Indices: append([]int(nil), r.Indices...),
			Values:  append([]float64(nil), r.Values...),
		}
	}
	return &MemoryIndex{rows: out}, nil
}

// Scores returns the similarity of query against every row, in row order.
func (m *MemoryIndex) Scores(query Sparse) []float64 {
	scores := make([]float64, len(m.rows))
	for i, row := range m.rows {
		scores[i] = clamp01(Dot(query, row))
	}
	return scores
}

// Best returns the highest-scoring row. Among equal scores the first row wins.
// ok is false when the index is empty.
func (m *MemoryIndex) Best(query Sparse) (best Result, ok bool) {
	if len(m.rows) == 0 {
		return Result{Index: -1}, false
	}
	best = Result{Index: 0, Score: clamp01(Dot(query, m.rows[0]))}
	for i := 1; i < len(m.rows); i++ {
		// strict > keeps the earliest index on ties
		if s := clamp01(Dot(query, m.rows[i])); s > best.Score {
			best = Result{Index: i, Score: s}
		}
	}
	return best, true
}

// Search returns the top-k rows by score, ties ordered by row index.
func (m *MemoryIndex) Search(query Sparse, k int) []Result {
	if k <= 0 || len(m.rows) == 0 {
		return nil
	}
	scores := m.Scores(query)
	results := make([]Result, len(scores))
	for i, s := range scores {
		results[i] = Result{Index: i, Score: s}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// Size returns the number of rows in the index.
func (m *MemoryIndex) Size() int {
	return len(m.rows)
}
