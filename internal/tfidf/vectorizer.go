package tfidf

import (
	"errors"
	"math"
	"sort"

	"github.com/hyperjump/gluco/internal/vector"
)

// ErrEmptyVocabulary is returned by Fit when no document contains a token.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no tokens")

// Vectorizer maps text to L2-normalized TF-IDF vectors over a frozen vocabulary.
// It is safe for concurrent use; nothing mutates it after Fit returns.
type Vectorizer struct {
	vocabulary map[string]int // term -> feature index
	terms      []string       // feature index -> term, sorted
	idf        []float64      // feature index -> smoothed idf
	numDocs    int
}

// Fit learns the vocabulary and inverse document frequencies from docs.
// Feature indexes follow sorted term order. idf(t) = ln((1+n)/(1+df(t))) + 1.
func Fit(docs []string) (*Vectorizer, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		numDocs:    len(docs),
	}
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v, nil
}

// Transform projects text into the fitted space. Terms outside the vocabulary are ignored,
// so text sharing no term with the vocabulary yields the zero vector.
func (v *Vectorizer) Transform(text string) vector.Sparse {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	out := vector.Sparse{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)
	for _, idx := range out.Indices {
		out.Values = append(out.Values, counts[idx]*v.idf[idx])
	}
	vector.Normalize(out)
	return out
}

// TransformAll projects each document in order.
func (v *Vectorizer) TransformAll(docs []string) []vector.Sparse {
	out := make([]vector.Sparse, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Dimensions returns the vocabulary size.
func (v *Vectorizer) Dimensions() int {
	return len(v.terms)
}

// NumDocs returns the number of documents the vectorizer was fit on.
func (v *Vectorizer) NumDocs() int {
	return v.numDocs
}

// Terms returns a copy of the vocabulary in feature order.
func (v *Vectorizer) Terms() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the idf weight of term and whether term is in the vocabulary.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}
