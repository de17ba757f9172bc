// Package tfidf provides a TF-IDF vector space fit once over a fixed set of documents.
package tfidf

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest token kept; single characters are dropped.
const minTokenRunes = 2

// Tokenize lowercases text and returns its maximal runs of word characters
// (letters, numbers, underscore) that are at least two characters long.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			tokens = append(tokens, text[start:end])
		}
		start = -1
		runes = 0
	}
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
