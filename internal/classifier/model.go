package classifier

import (
	"fmt"
	"math"
)

// Model is a fitted binary logistic regression.
type Model struct {
	coef      []float64
	intercept float64
}

// NewModel validates and copies the fitted weights.
func NewModel(coef []float64, intercept float64) (*Model, error) {
	if err := checkFinite("coef_", coef); err != nil {
		return nil, err
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("%w: intercept_ is not finite", ErrIncompatibleArtifact)
	}
	return &Model{coef: append([]float64(nil), coef...), intercept: intercept}, nil
}

// DecisionFunction returns the signed distance w·x + b. Positive values favour class 1.
func (m *Model) DecisionFunction(x []float64) float64 {
	z := m.intercept
	for i, w := range m.coef {
		z += w * x[i]
	}
	return z
}

// PredictProba returns the probabilities of class 0 and class 1; low is computed as 1 - high.
func (m *Model) PredictProba(x []float64) (low, high float64) {
	high = sigmoid(m.DecisionFunction(x))
	return 1 - high, high
}

// Predict returns 1 when class 1 is strictly more probable, else 0.
// This is the decision function being positive, except near zero where the
// sigmoid rounds to exactly 0.5 and class 0 is returned.
func (m *Model) Predict(x []float64) int {
	low, high := m.PredictProba(x)
	if high > low {
		return 1
	}
	return 0
}

// sigmoid avoids overflow in exp for large |z|.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
