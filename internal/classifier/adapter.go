package classifier

import (
	"fmt"

	"github.com/hyperjump/gluco/internal/models"
	"go.uber.org/zap"
)

// Adapter runs a record through the scaler and the model. It holds no mutable state.
type Adapter struct {
	scaler *Scaler
	model  *Model
	logger *zap.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = l }
}

// NewAdapter pairs a scaler with a model.
func NewAdapter(scaler *Scaler, model *Model, opts ...AdapterOption) (*Adapter, error) {
	if scaler == nil || model == nil {
		return nil, fmt.Errorf("scaler and model are required")
	}
	if scaler.NumFeatures() != len(model.coef) {
		return nil, fmt.Errorf("%w: scaler has %d features, model has %d",
			ErrIncompatibleArtifact, scaler.NumFeatures(), len(model.coef))
	}
	a := &Adapter{scaler: scaler, model: model, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a, nil
}

// Load reads both artifacts and pairs them.
func Load(scalerPath, modelPath string, opts ...AdapterOption) (*Adapter, error) {
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewAdapter(scaler, model, opts...)
}

// Predict classifies eight raw values given in models.FieldNames order.
// Returns models.ErrInvalidInput when values is not eight finite numbers.
func (a *Adapter) Predict(values []float64) (models.Prediction, error) {
	record, err := models.NewHealthRecord(values)
	if err != nil {
		return models.Prediction{}, err
	}
	return a.PredictRecord(record), nil
}

// PredictRecord classifies a record. No range validation is applied.
func (a *Adapter) PredictRecord(record models.HealthRecord) models.Prediction {
	scaled := a.scaler.Transform(record.Values())
	low, high := a.model.PredictProba(scaled)
	p := models.Prediction{
		Label:           a.model.Predict(scaled),
		ProbabilityLow:  low,
		ProbabilityHigh: high,
	}
	a.logger.Debug("record classified",
		zap.Int("label", p.Label),
		zap.Float64("probability_high", p.ProbabilityHigh),
	)
	return p
}
