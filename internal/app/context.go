// Package app wires the corpus, matcher and classifier into one loaded application context.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/gluco/internal/classifier"
	"github.com/hyperjump/gluco/internal/config"
	"github.com/hyperjump/gluco/internal/corpus"
	"github.com/hyperjump/gluco/internal/keyword"
	"github.com/hyperjump/gluco/internal/matcher"
	"github.com/hyperjump/gluco/internal/models"
	"github.com/hyperjump/gluco/pkg/utils"
	"go.uber.org/zap"
)

// Context holds everything loaded at startup. It is never mutated after Load
// and is safe for concurrent use.
type Context struct {
	matcher     *matcher.Matcher
	adapter     *classifier.Adapter
	suggestions *keyword.QuestionIndex
	corpusPath  string
	loadedAt    time.Time
	logger      *zap.Logger
	closeOnce   sync.Once
	closeErr    error
}

// Status describes a loaded context.
type Status struct {
	Corpus      string    `json:"corpus"`
	Questions   int       `json:"questions"`
	Vocabulary  int       `json:"vocabulary"`
	Threshold   float64   `json:"threshold"`
	Suggestions bool      `json:"suggestions"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Load reads the corpus and model artifacts named by cfg and builds a Context.
// Any failure is returned; nothing is partially loaded.
func Load(cfg *config.Config, logger *zap.Logger) (*Context, error) {
	logger = utils.OrNop(logger)
	entries, err := corpus.Load(cfg.Corpus.Path, corpus.Options{
		QuestionColumn: cfg.Corpus.QuestionColumn,
		AnswerColumn:   cfg.Corpus.AnswerColumn,
		Table:          cfg.Corpus.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	opts := []matcher.Option{
		matcher.WithThreshold(cfg.Matcher.ThresholdOrDefault()),
		matcher.WithLogger(logger),
	}
	if cfg.Matcher.FallbackMessage != "" {
		opts = append(opts, matcher.WithFallback(cfg.Matcher.FallbackMessage))
	}
	var index *keyword.QuestionIndex
	if n := cfg.Matcher.SuggestionsOrDefault(); n > 0 {
		questions := make([]string, len(entries))
		for i, e := range entries {
			questions[i] = e.Question
		}
		index, err = keyword.NewQuestionIndex(questions, &keyword.SearchOptions{Fuzziness: cfg.Matcher.FuzzinessOrDefault()})
		if err != nil {
			return nil, fmt.Errorf("failed to build suggestion index: %w", err)
		}
		opts = append(opts, matcher.WithSuggester(index, n))
	}

	m, err := matcher.New(entries, opts...)
	if err != nil {
		closeIndex(index)
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}

	adapter, err := classifier.Load(cfg.Model.ScalerPath, cfg.Model.ClassifierPath, classifier.WithLogger(logger))
	if err != nil {
		closeIndex(index)
		return nil, fmt.Errorf("failed to load classifier: %w", err)
	}

	c := &Context{
		matcher:     m,
		adapter:     adapter,
		suggestions: index,
		corpusPath:  cfg.Corpus.Path,
		loadedAt:    time.Now(),
		logger:      logger,
	}
	logger.Info("application loaded",
		zap.String("corpus", cfg.Corpus.Path),
		zap.Int("questions", m.Size()),
		zap.Int("vocabulary", m.VocabularySize()),
		zap.String("classifier", cfg.Model.ClassifierPath),
	)
	return c, nil
}

func closeIndex(index *keyword.QuestionIndex) {
	if index != nil {
		_ = index.Close()
	}
}

// Chat answers one query. Suggestions are only looked up when the query fell back.
func (c *Context) Chat(query string) models.ChatResponse {
	match := c.matcher.Match(query)
	resp := models.ChatResponse{
		ID:      uuid.New().String(),
		Query:   query,
		Answer:  match.Answer,
		Matched: match.Matched,
		Score:   match.Score,
	}
	if match.Matched {
		resp.MatchedQuestion = match.Question
	} else {
		resp.Suggestions = c.matcher.Suggestions(query)
	}
	return resp
}

// Answer returns the answer text for query, or the fallback message.
func (c *Context) Answer(query string) string {
	return c.matcher.Answer(query)
}

// Predict classifies the record described by req.
// Returns models.ErrInvalidInput when the request does not hold eight finite values.
func (c *Context) Predict(req models.PredictRequest) (models.Prediction, error) {
	record, err := req.HealthRecord()
	if err != nil {
		return models.Prediction{}, err
	}
	return c.adapter.PredictRecord(record), nil
}

// Matcher returns the question matcher.
func (c *Context) Matcher() *matcher.Matcher {
	return c.matcher
}

// Classifier returns the risk classifier adapter.
func (c *Context) Classifier() *classifier.Adapter {
	return c.adapter
}

// Status reports what was loaded.
func (c *Context) Status() Status {
	return Status{
		Corpus:      c.corpusPath,
		Questions:   c.matcher.Size(),
		Vocabulary:  c.matcher.VocabularySize(),
		Threshold:   c.matcher.Threshold(),
		Suggestions: c.suggestions != nil,
		LoadedAt:    c.loadedAt,
	}
}

// Close releases the suggestion index. Later calls are no-ops.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		if c.suggestions != nil {
			c.closeErr = c.suggestions.Close()
		}
	})
	return c.closeErr
}
