// Package models defines core data structures for the Q&A corpus, health records, and API exchanges.
package models

// QAEntry is one stored question with its answer. Entries are immutable once loaded.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Match is the outcome of matching a query against the corpus.
// Index is -1 when the corpus is empty. Matched reports whether Score cleared the threshold.
type Match struct {
	Index    int     `json:"index"`
	Score    float64 `json:"score"`
	Question string  `json:"question,omitempty"`
	Answer   string  `json:"answer"`
	Matched  bool    `json:"matched"`
}

// ChatRequest is the body of a chat exchange.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse is one rendered chat exchange.
// Suggestions holds "did you mean" questions and is only set when the query fell back.
type ChatResponse struct {
	ID              string   `json:"id"`
	Query           string   `json:"query"`
	Answer          string   `json:"answer"`
	Matched         bool     `json:"matched"`
	Score           float64  `json:"score"`
	MatchedQuestion string   `json:"matched_question,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}
