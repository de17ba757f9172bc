// Package fixtures writes a small, fixed set of artifacts (corpus, scaler, classifier, config)
// for tests across packages.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

// CorpusCSV is a small diabetes Q&A table using the default column names.
const CorpusCSV = `Pertanyaan,Jawaban
Apa itu diabetes?,Diabetes adalah ...
Apa saja gejala diabetes?,"Gejala diabetes meliputi sering haus, sering buang air kecil, dan mudah lelah."
Bagaimana cara menurunkan gula darah?,Kurangi konsumsi gula dan perbanyak aktivitas fisik.
Berapa kadar gula darah normal?,Kadar gula darah puasa normal adalah di bawah 100 mg/dL.
Apa fungsi insulin?,Insulin membantu sel menyerap glukosa dari darah.
`

// ScalerJSON is a fitted standard scaler over the eight health features.
const ScalerJSON = `{
  "mean_": [3.845, 120.894, 69.105, 20.536, 79.799, 31.993, 0.4719, 33.241],
  "scale_": [3.3676, 31.952, 19.343, 15.942, 115.169, 7.879, 0.3311, 11.753],
  "n_features_in_": 8
}`

// ModelJSON is a fitted binary logistic regression over the scaled features.
const ModelJSON = `{
  "coef_": [[0.39, 1.08, -0.23, 0.02, -0.14, 0.69, 0.30, 0.17]],
  "intercept_": [-0.5],
  "classes_": [0, 1]
}`

// Golden outputs of the scaler+model pair above.
var (
	// GoldenRecord is (2, 150, 85, 30, 100, 32.0, 0.6, 45).
	GoldenRecord          = []float64{2, 150, 85, 30, 100, 32.0, 0.6, 45}
	GoldenLabel           = 1
	GoldenProbabilityHigh = 0.5878822576184664
	GoldenProbabilityLow  = 0.41211774238153365

	// LowRiskRecord is (1, 85, 66, 29, 0, 26.6, 0.351, 31).
	LowRiskRecord          = []float64{1, 85, 66, 29, 0, 26.6, 0.351, 31}
	LowRiskProbabilityHigh = 0.0749916682163416
)

// Paths locates the files written by Write.
type Paths struct {
	Dir        string
	Corpus     string
	Scaler     string
	Classifier string
	Config     string
}

// Write stores the corpus, scaler, classifier and a config.yaml pointing at them in dir.
func Write(dir string) (Paths, error) {
	p := Paths{
		Dir:        dir,
		Corpus:     filepath.Join(dir, "diabetes_qa.csv"),
		Scaler:     filepath.Join(dir, "scaler.json"),
		Classifier: filepath.Join(dir, "diabetes_model.json"),
		Config:     filepath.Join(dir, "config.yaml"),
	}
	config := `server:
  host: "127.0.0.1"
  port: 0
corpus:
  path: "./diabetes_qa.csv"
model:
  classifier_path: "./diabetes_model.json"
  scaler_path: "./scaler.json"
`
	files := map[string]string{
		p.Corpus:     CorpusCSV,
		p.Scaler:     ScalerJSON,
		p.Classifier: ModelJSON,
		p.Config:     config,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			return Paths{}, fmt.Errorf("write fixture %s: %w", path, err)
		}
	}
	return p, nil
}
