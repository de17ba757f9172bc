// Package config provides configuration loading and structs for the Gluco assistant.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Matcher MatcherConfig `yaml:"matcher"`
	Model   ModelConfig   `yaml:"model"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig locates the Q&A table and names its columns.
type CorpusConfig struct {
	Path           string `yaml:"path"`
	QuestionColumn string `yaml:"question_column"`
	AnswerColumn   string `yaml:"answer_column"`
	// Table is only read for SQLite sources.
	Table string `yaml:"table"`
}

// MatcherConfig holds question matching settings.
type MatcherConfig struct {
	// Threshold, Suggestions and Fuzziness are pointers so an explicit 0 is kept.
	Threshold       *float64 `yaml:"threshold"`
	FallbackMessage string   `yaml:"fallback_message"`
	// Suggestions is the number of related questions offered when nothing matches; 0 disables.
	Suggestions *int `yaml:"suggestions"`
	// Fuzziness is the edit distance allowed per suggestion term; 0 means exact terms only.
	Fuzziness *int `yaml:"fuzziness"`
}

// ModelConfig locates the classifier and scaler artifacts.
type ModelConfig struct {
	ClassifierPath string `yaml:"classifier_path"`
	ScalerPath     string `yaml:"scaler_path"`
}

// WatchConfig controls reloading when the corpus or artifacts change on disk.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// ThresholdOrDefault returns the configured threshold.
func (m *MatcherConfig) ThresholdOrDefault() float64 {
	if m.Threshold != nil {
		return *m.Threshold
	}
	return DefaultThreshold
}

// SuggestionsOrDefault returns the configured suggestion count.
func (m *MatcherConfig) SuggestionsOrDefault() int {
	if m.Suggestions != nil {
		return *m.Suggestions
	}
	return DefaultSuggestions
}

// FuzzinessOrDefault returns the configured suggestion edit distance.
func (m *MatcherConfig) FuzzinessOrDefault() int {
	if m.Fuzziness != nil {
		return *m.Fuzziness
	}
	return DefaultFuzziness
}

// Paths returns every file the application loads at startup.
func (c *Config) Paths() []string {
	return []string{c.Corpus.Path, c.Model.ClassifierPath, c.Model.ScalerPath}
}

// Load reads and parses the config file at path, applies defaults, expands paths and validates.
// Returns an error if the file cannot be read or parsed, or holds invalid values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	cfg.Model.ClassifierPath = expandPath(cfg.Model.ClassifierPath, configDir)
	cfg.Model.ScalerPath = expandPath(cfg.Model.ScalerPath, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if t := c.Matcher.ThresholdOrDefault(); t < 0 || t > 1 {
		return fmt.Errorf("invalid config: matcher.threshold must be within [0, 1], got %g", t)
	}
	if n := c.Matcher.SuggestionsOrDefault(); n < 0 {
		return fmt.Errorf("invalid config: matcher.suggestions must not be negative, got %d", n)
	}
	if f := c.Matcher.FuzzinessOrDefault(); f < 0 || f > 2 {
		return fmt.Errorf("invalid config: matcher.fuzziness must be 0, 1 or 2, got %d", f)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
