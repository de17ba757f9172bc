// Package keyword provides fuzzy keyword lookup over the corpus questions.
package keyword

// SearchOptions optional parameters for question lookup. Nil means use defaults.
type SearchOptions struct {
	// Fuzziness is the maximum Levenshtein edit distance per term, capped at 2.
	// Zero matches exact terms only.
	Fuzziness int
}

// Result is a single question hit. Index is the row of the question in the corpus.
type Result struct {
	Index int
	Score float64
}
