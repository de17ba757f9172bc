// Package classifier applies a pre-fit standard scaler and logistic-regression model to health records.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hyperjump/gluco/internal/models"
)

// ErrIncompatibleArtifact is returned when an artifact file does not describe
// an 8-feature scaler or a binary {0, 1} classifier.
var ErrIncompatibleArtifact = errors.New("incompatible model artifact")

// scalerFile mirrors the fitted attributes of a scikit-learn StandardScaler.
type scalerFile struct {
	Mean        []float64 `json:"mean_"`
	Scale       []float64 `json:"scale_"`
	NFeaturesIn *int      `json:"n_features_in_,omitempty"`
}

// modelFile mirrors the fitted attributes of a scikit-learn LogisticRegression.
type modelFile struct {
	Coef      [][]float64 `json:"coef_"`
	Intercept []float64   `json:"intercept_"`
	Classes   []int       `json:"classes_"`
}

// LoadScaler reads a scaler artifact. A missing file wraps fs.ErrNotExist.
func LoadScaler(path string) (*Scaler, error) {
	var f scalerFile
	if err := readJSON(path, &f); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	s, err := NewScaler(f.Mean, f.Scale)
	if err != nil {
		return nil, fmt.Errorf("load scaler %s: %w", path, err)
	}
	if f.NFeaturesIn != nil && *f.NFeaturesIn != models.NumFeatures {
		return nil, fmt.Errorf("load scaler %s: %w: n_features_in_ is %d, want %d",
			path, ErrIncompatibleArtifact, *f.NFeaturesIn, models.NumFeatures)
	}
	return s, nil
}

// LoadModel reads a classifier artifact. A missing file wraps fs.ErrNotExist.
func LoadModel(path string) (*Model, error) {
	var f modelFile
	if err := readJSON(path, &f); err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	if len(f.Coef) != 1 {
		return nil, fmt.Errorf("load classifier %s: %w: coef_ must have exactly one row, got %d",
			path, ErrIncompatibleArtifact, len(f.Coef))
	}
	if len(f.Intercept) != 1 {
		return nil, fmt.Errorf("load classifier %s: %w: intercept_ must have exactly one value, got %d",
			path, ErrIncompatibleArtifact, len(f.Intercept))
	}
	if f.Classes != nil && (len(f.Classes) != 2 || f.Classes[0] != 0 || f.Classes[1] != 1) {
		return nil, fmt.Errorf("load classifier %s: %w: classes_ must be [0, 1], got %v",
			path, ErrIncompatibleArtifact, f.Classes)
	}
	m, err := NewModel(f.Coef[0], f.Intercept[0])
	if err != nil {
		return nil, fmt.Errorf("load classifier %s: %w", path, err)
	}
	return m, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIncompatibleArtifact, path, err)
	}
	return nil
}

func checkFinite(name string, values []float64) error {
	if len(values) != models.NumFeatures {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrIncompatibleArtifact, name, len(values), models.NumFeatures)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] is not finite", ErrIncompatibleArtifact, name, i)
		}
	}
	return nil
}
