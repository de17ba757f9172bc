package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/gluco/internal/app"
	"github.com/hyperjump/gluco/internal/config"
	"github.com/hyperjump/gluco/internal/models"
	"github.com/hyperjump/gluco/test/fixtures"
)

func newCommandFlags(named *[models.NumFeatures]float64) *flag.FlagSet {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.String("config", defaultConfigPath, "config file path")
	fs.String("output", "text", "output format")
	fs.Bool("debug", false, "enable debug logging")
	for i, fr := range models.FieldRanges {
		fs.Float64Var(&named[i], fr.Name, 0, fr.Name)
	}
	return fs
}

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"apa itu diabetes", "-output", "json"},
			expected: []string{"-output", "json", "--", "apa itu diabetes"},
		},
		{
			name:     "flags first keep their order",
			args:     []string{"-output", "json", "apa itu diabetes"},
			expected: []string{"-output", "json", "--", "apa itu diabetes"},
		},
		{
			name:     "query only",
			args:     []string{"apa itu diabetes"},
			expected: []string{"--", "apa itu diabetes"},
		},
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "positional values then flags",
			args:     []string{"2", "150", "--output", "json"},
			expected: []string{"--output", "json", "--", "2", "150"},
		},
		{
			name:     "bool flag between values keeps value order",
			args:     []string{"1", "110", "--debug", "15", "20", "80", "25", "0.5", "30"},
			expected: []string{"--debug", "--", "1", "110", "15", "20", "80", "25", "0.5", "30"},
		},
		{
			name:     "value flag between values keeps value order",
			args:     []string{"1", "110", "-output", "json", "15", "20"},
			expected: []string{"-output", "json", "--", "1", "110", "15", "20"},
		},
		{
			name:     "flag with inline value",
			args:     []string{"1", "--output=json", "2"},
			expected: []string{"--output=json", "--", "1", "2"},
		},
		{
			name:     "negative numbers are values",
			args:     []string{"2", "-1", "-.5"},
			expected: []string{"--", "2", "-1", "-.5"},
		},
		{
			name:     "negative value of a named flag",
			args:     []string{"-glucose", "-5"},
			expected: []string{"-glucose", "-5"},
		},
		{
			name:     "explicit terminator",
			args:     []string{"--debug", "--", "-output", "x"},
			expected: []string{"--debug", "--", "-output", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var named [models.NumFeatures]float64
			got := argsReorder(newCommandFlags(&named), tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestArgsReorder_PredictValuesStayInFieldOrder(t *testing.T) {
	var named [models.NumFeatures]float64
	fs := newCommandFlags(&named)
	args := []string{"1", "110", "--debug", "15", "20", "80", "25", "0.5", "30"}
	if err := fs.Parse(argsReorder(fs, args)); err != nil {
		t.Fatal(err)
	}
	rec, err := recordFromArgs(fs, named)
	if err != nil {
		t.Fatal(err)
	}
	want := models.HealthRecord{Pregnancies: 1, Glucose: 110, BloodPressure: 15, SkinThickness: 20,
		Insulin: 80, BMI: 25, DiabetesPedigree: 0.5, Age: 30}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"diabetes"}, "diabetes"},
		{"multiple words", []string{"apa", "itu", "diabetes?"}, "apa itu diabetes?"},
		{"single quoted phrase", []string{"apa itu diabetes?"}, "apa itu diabetes?"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestRecordFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		glucose float64
		wantErr bool
	}{
		{"positional", []string{"2", "150", "85", "30", "100", "32.0", "0.6", "45"}, 150, false},
		{"named", []string{"-pregnancies", "2", "-glucose", "140", "-blood_pressure", "85", "-skin_thickness", "30",
			"-insulin", "0", "-bmi", "32", "-diabetes_pedigree", "0.6", "-age", "45"}, 140, false},
		{"seven positional", []string{"2", "150", "85", "30", "100", "32.0", "0.6"}, 0, true},
		{"missing named", []string{"-glucose", "140"}, 0, true},
		{"non-numeric", []string{"2", "x", "85", "30", "100", "32.0", "0.6", "45"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var named [models.NumFeatures]float64
			fs := newCommandFlags(&named)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			rec, err := recordFromArgs(fs, named)
			if (err != nil) != tt.wantErr {
				t.Fatalf("recordFromArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("error should wrap ErrInvalidInput: %v", err)
				}
				return
			}
			if rec.Glucose != tt.glucose {
				t.Errorf("Glucose = %g, want %g", rec.Glucose, tt.glucose)
			}
		})
	}
}

func TestChatLoop(t *testing.T) {
	paths, err := fixtures.Write(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(paths.Config)
	if err != nil {
		t.Fatal(err)
	}
	c, err := app.Load(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	in := strings.NewReader("Apa itu diabetes?\n\n   \nzzxxqq unrelated gibberish\nkeluar\nApa fungsi insulin?\n")
	var out bytes.Buffer
	if err := chatLoop(in, &out, c); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Diabetes adalah ...") {
		t.Errorf("missing answer:\n%s", got)
	}
	if !strings.Contains(got, config.DefaultFallbackMessage) {
		t.Errorf("missing fallback:\n%s", got)
	}
	if strings.Contains(got, "Insulin membantu") {
		t.Errorf("loop should stop at keluar:\n%s", got)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8501
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}
