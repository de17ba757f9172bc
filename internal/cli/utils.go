// Package cli provides output formatting for the Gluco command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/gluco/internal/app"
	"github.com/hyperjump/gluco/internal/models"
	"github.com/hyperjump/gluco/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat accepts "text" or "json". Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text or json)", s)
}

// WriteChat writes one chat exchange to w in the given format.
func WriteChat(w io.Writer, resp models.ChatResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, resp.Answer)
	if len(resp.Suggestions) > 0 {
		fmt.Fprintln(w, "\nMungkin maksud Anda:")
		for _, s := range resp.Suggestions {
			fmt.Fprintf(w, "  - %s\n", utils.Truncate(s, 120))
		}
	}
	return nil
}

// WritePrediction writes a rendered prediction to w in the given format.
func WritePrediction(w io.Writer, resp models.PredictResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, resp.Message)
	if len(resp.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRekomendasi:")
		for _, r := range resp.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}

// WriteStatus writes what the application loaded.
func WriteStatus(w io.Writer, s app.Status, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, s)
	}
	fmt.Fprintf(w, "Corpus:      %s\n", s.Corpus)
	fmt.Fprintf(w, "Questions:   %d\n", s.Questions)
	fmt.Fprintf(w, "Vocabulary:  %d terms\n", s.Vocabulary)
	fmt.Fprintf(w, "Threshold:   %g\n", s.Threshold)
	fmt.Fprintf(w, "Suggestions: %t\n", s.Suggestions)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
