// Package matcher answers free-text questions by nearest-neighbour lookup over a fixed Q&A corpus.
package matcher

import (
	"fmt"

	"github.com/hyperjump/gluco/internal/models"
	"github.com/hyperjump/gluco/internal/tfidf"
	"github.com/hyperjump/gluco/internal/vector"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the similarity a match must strictly exceed.
	DefaultThreshold = 0.5
	// DefaultFallback is returned when no stored question is similar enough.
	DefaultFallback = "Maaf, saya tidak mengerti pertanyaan Anda. Silakan coba lagi."
)

// Suggester proposes related corpus rows for a query that did not match.
type Suggester interface {
	Suggest(query string, limit int) ([]int, error)
}

// Matcher holds a TF-IDF space fit over the corpus questions and the projected question rows.
// It is immutable after New and safe for concurrent use.
type Matcher struct {
	corpus         []models.QAEntry
	vectorizer     *tfidf.Vectorizer
	index          *vector.MemoryIndex
	threshold      float64
	fallback       string
	suggester      Suggester
	maxSuggestions int
	logger         *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the similarity a match must strictly exceed.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) { m.threshold = threshold }
}

// WithFallback sets the message returned when nothing matches.
func WithFallback(message string) Option {
	return func(m *Matcher) { m.fallback = message }
}

// WithSuggester enables up to limit "did you mean" suggestions for unmatched queries.
func WithSuggester(s Suggester, limit int) Option {
	return func(m *Matcher) {
		m.suggester = s
		m.maxSuggestions = limit
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// New fits the vector space over every question in corpus. The corpus is copied.
func New(corpus []models.QAEntry, opts ...Option) (*Matcher, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	entries := append([]models.QAEntry(nil), corpus...)
	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
	}
	vec, err := tfidf.Fit(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to fit question vectors: %w", err)
	}
	index, err := vector.NewMemoryIndex(vec.TransformAll(questions))
	if err != nil {
		return nil, fmt.Errorf("failed to index question vectors: %w", err)
	}

	m := &Matcher{
		corpus:     entries,
		vectorizer: vec,
		index:      index,
		threshold:  DefaultThreshold,
		fallback:   DefaultFallback,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.threshold < 0 || m.threshold > 1 {
		return nil, fmt.Errorf("threshold must be within [0, 1], got %g", m.threshold)
	}
	m.logger.Debug("matcher ready",
		zap.Int("questions", len(entries)),
		zap.Int("vocabulary", vec.Dimensions()),
		zap.Float64("threshold", m.threshold),
	)
	return m, nil
}

// Match finds the most similar stored question. Ties go to the earliest corpus row.
// When the best score does not exceed the threshold, Answer holds the fallback message.
func (m *Matcher) Match(query string) models.Match {
	best, ok := m.index.Best(m.vectorizer.Transform(query))
	if !ok {
		return models.Match{Index: -1, Answer: m.fallback}
	}
	entry := m.corpus[best.Index]
	match := models.Match{
		Index:    best.Index,
		Score:    best.Score,
		Question: entry.Question,
		Matched:  best.Score > m.threshold,
	}
	if match.Matched {
		match.Answer = entry.Answer
	} else {
		match.Answer = m.fallback
	}
	m.logger.Debug("query matched",
		zap.String("query", query),
		zap.Int("index", match.Index),
		zap.Float64("score", match.Score),
		zap.Bool("matched", match.Matched),
	)
	return match
}

// Answer returns the answer of the best-matching question, or the fallback message.
func (m *Matcher) Answer(query string) string {
	return m.Match(query).Answer
}

// Suggestions returns related stored questions for query. It is empty when no suggester
// is configured; suggester errors are logged and yield no suggestions.
func (m *Matcher) Suggestions(query string) []string {
	if m.suggester == nil || m.maxSuggestions <= 0 {
		return nil
	}
	rows, err := m.suggester.Suggest(query, m.maxSuggestions)
	if err != nil {
		m.logger.Warn("suggestion lookup failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row < 0 || row >= len(m.corpus) {
			continue
		}
		out = append(out, m.corpus[row].Question)
	}
	return out
}

// Corpus returns a copy of the stored entries.
func (m *Matcher) Corpus() []models.QAEntry {
	return append([]models.QAEntry(nil), m.corpus...)
}

// Size returns the number of stored entries.
func (m *Matcher) Size() int {
	return len(m.corpus)
}

// VocabularySize returns the number of terms in the frozen vocabulary.
func (m *Matcher) VocabularySize() int {
	return m.vectorizer.Dimensions()
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Fallback returns the configured fallback message.
func (m *Matcher) Fallback() string {
	return m.fallback
}
