package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
corpus:
  path: "/data/qa.csv"
matcher:
  threshold: 0.6
  suggestions: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Corpus.Path != "/data/qa.csv" {
		t.Errorf("corpus path = %s", cfg.Corpus.Path)
	}
	if cfg.Matcher.ThresholdOrDefault() != 0.6 {
		t.Errorf("threshold = %g", cfg.Matcher.ThresholdOrDefault())
	}
	if cfg.Matcher.SuggestionsOrDefault() != 5 {
		t.Errorf("suggestions = %d", cfg.Matcher.SuggestionsOrDefault())
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
corpus:
  path: "./data/qa.csv"
model:
  classifier_path: "./models/diabetes_model.json"
  scaler_path: "./models/scaler.json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	if want := filepath.Join(dir, "data", "qa.csv"); cfg.Corpus.Path != want {
		t.Errorf("corpus path = %s, want %s", cfg.Corpus.Path, want)
	}
	if want := filepath.Join(dir, "models", "scaler.json"); cfg.Model.ScalerPath != want {
		t.Errorf("scaler path = %s, want %s", cfg.Model.ScalerPath, want)
	}
	if len(cfg.Paths()) != 3 {
		t.Errorf("Paths() = %v", cfg.Paths())
	}
}

func TestLoad_explicitZeroKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "matcher:\n  threshold: 0\n  suggestions: 0\n  fuzziness: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Matcher.ThresholdOrDefault() != 0 {
		t.Errorf("explicit threshold 0 replaced: %g", cfg.Matcher.ThresholdOrDefault())
	}
	if cfg.Matcher.SuggestionsOrDefault() != 0 {
		t.Errorf("explicit suggestions 0 replaced: %d", cfg.Matcher.SuggestionsOrDefault())
	}
	if cfg.Matcher.FuzzinessOrDefault() != 0 {
		t.Errorf("explicit fuzziness 0 replaced: %d", cfg.Matcher.FuzzinessOrDefault())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"threshold above one", "matcher:\n  threshold: 1.5\n", "threshold"},
		{"negative suggestions", "matcher:\n  suggestions: -1\n", "suggestions"},
		{"fuzziness too high", "matcher:\n  fuzziness: 3\n", "fuzziness"},
		{"bad yaml", "server: [\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Corpus.QuestionColumn != "Pertanyaan" || cfg.Corpus.AnswerColumn != "Jawaban" {
		t.Errorf("default columns: %+v", cfg.Corpus)
	}
	if cfg.Matcher.ThresholdOrDefault() != 0.5 {
		t.Errorf("default threshold: got %g", cfg.Matcher.ThresholdOrDefault())
	}
	if cfg.Matcher.FallbackMessage != DefaultFallbackMessage {
		t.Errorf("default fallback: got %q", cfg.Matcher.FallbackMessage)
	}
	if cfg.Matcher.SuggestionsOrDefault() != 3 || cfg.Matcher.FuzzinessOrDefault() != 1 {
		t.Errorf("default suggestions/fuzziness: %d/%d", cfg.Matcher.SuggestionsOrDefault(), cfg.Matcher.FuzzinessOrDefault())
	}
	if cfg.Watch.Enabled {
		t.Error("watch should be disabled by default")
	}
	if cfg.Watch.DebounceMS != 400 {
		t.Errorf("default debounce: got %d", cfg.Watch.DebounceMS)
	}
}
