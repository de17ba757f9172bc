package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumFeatures is the number of fields in a HealthRecord.
const NumFeatures = 8

// ErrInvalidInput is returned when values cannot be read as a HealthRecord.
var ErrInvalidInput = errors.New("invalid input")

// FieldNames lists the HealthRecord fields in model order. The order matches the training data.
var FieldNames = [NumFeatures]string{
	"pregnancies",
	"glucose",
	"blood_pressure",
	"skin_thickness",
	"insulin",
	"bmi",
	"diabetes_pedigree",
	"age",
}

// HealthRecord holds the eight measurements fed to the risk classifier.
type HealthRecord struct {
	Pregnancies      float64 `json:"pregnancies"`       // count
	Glucose          float64 `json:"glucose"`           // mg/dL
	BloodPressure    float64 `json:"blood_pressure"`    // mm Hg
	SkinThickness    float64 `json:"skin_thickness"`    // mm
	Insulin          float64 `json:"insulin"`           // µU/mL
	BMI              float64 `json:"bmi"`               // kg/m²
	DiabetesPedigree float64 `json:"diabetes_pedigree"` // unitless
	Age              float64 `json:"age"`               // years
}

// NewHealthRecord builds a record from values in FieldNames order.
// Returns ErrInvalidInput on wrong arity or non-finite values.
func NewHealthRecord(values []float64) (HealthRecord, error) {
	if len(values) != NumFeatures {
		return HealthRecord{}, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidInput, NumFeatures, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return HealthRecord{}, fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, FieldNames[i])
		}
	}
	return HealthRecord{
		Pregnancies:      values[0],
		Glucose:          values[1],
		BloodPressure:    values[2],
		SkinThickness:    values[3],
		Insulin:          values[4],
		BMI:              values[5],
		DiabetesPedigree: values[6],
		Age:              values[7],
	}, nil
}

// ParseHealthRecord parses textual values in FieldNames order.
func ParseHealthRecord(fields []string) (HealthRecord, error) {
	if len(fields) != NumFeatures {
		return HealthRecord{}, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidInput, NumFeatures, len(fields))
	}
	values := make([]float64, NumFeatures)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return HealthRecord{}, fmt.Errorf("%w: %s %q is not numeric", ErrInvalidInput, FieldNames[i], f)
		}
		values[i] = v
	}
	return NewHealthRecord(values)
}

// Values returns the fields in model order.
func (r HealthRecord) Values() []float64 {
	return []float64{
		r.Pregnancies,
		r.Glucose,
		r.BloodPressure,
		r.SkinThickness,
		r.Insulin,
		r.BMI,
		r.DiabetesPedigree,
		r.Age,
	}
}

// FieldRange is the accepted input range for one field of the prediction form.
type FieldRange struct {
	Name string
	Min  float64
	Max  float64
}

// FieldRanges are the form bounds, in model order.
var FieldRanges = [NumFeatures]FieldRange{
	{Name: "pregnancies", Min: 0, Max: 20},
	{Name: "glucose", Min: 0, Max: 300},
	{Name: "blood_pressure", Min: 0, Max: 200},
	{Name: "skin_thickness", Min: 0, Max: 100},
	{Name: "insulin", Min: 0, Max: 900},
	{Name: "bmi", Min: 0, Max: 100},
	{Name: "diabetes_pedigree", Min: 0, Max: 2.5},
	{Name: "age", Min: 0, Max: 120},
}

// ValidateRanges checks every field against FieldRanges.
// Range checks belong to the input surface; the classifier accepts any finite values.
func (r HealthRecord) ValidateRanges() error {
	for i, v := range r.Values() {
		fr := FieldRanges[i]
		if v < fr.Min || v > fr.Max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidInput, fr.Name, fr.Min, fr.Max, v)
		}
	}
	return nil
}

// Prediction is the classifier output for one record.
type Prediction struct {
	Label           int     `json:"label"` // 0 = low risk, 1 = high risk
	ProbabilityLow  float64 `json:"probability_low"`
	ProbabilityHigh float64 `json:"probability_high"`
}

// HighRisk reports whether the predicted label is 1.
func (p Prediction) HighRisk() bool {
	return p.Label == 1
}

// Confidence returns the probability of the predicted class.
func (p Prediction) Confidence() float64 {
	if p.HighRisk() {
		return p.ProbabilityHigh
	}
	return p.ProbabilityLow
}

// PredictRequest is the body of a prediction call. Either Values (in model order)
// or Record may be given; Values wins when both are set.
type PredictRequest struct {
	Values []float64     `json:"values,omitempty"`
	Record *HealthRecord `json:"record,omitempty"`
}

// PredictResponse is one rendered prediction.
type PredictResponse struct {
	ID              string     `json:"id"`
	Prediction      Prediction `json:"prediction"`
	Risk            string     `json:"risk"` // "high" or "low"
	Message         string     `json:"message"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// HealthRecord resolves the request into a record.
func (r PredictRequest) HealthRecord() (HealthRecord, error) {
	if r.Values != nil {
		return NewHealthRecord(r.Values)
	}
	if r.Record != nil {
		return NewHealthRecord(r.Record.Values())
	}
	return HealthRecord{}, fmt.Errorf("%w: request has neither values nor record", ErrInvalidInput)
}
