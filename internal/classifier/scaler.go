package classifier

// Scaler is a fitted per-feature affine transform: (x - mean) / scale.
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler validates and copies the fitted parameters. A zero scale behaves as 1,
// matching StandardScaler for constant features.
func NewScaler(mean, scale []float64) (*Scaler, error) {
	if err := checkFinite("mean_", mean); err != nil {
		return nil, err
	}
	if err := checkFinite("scale_", scale); err != nil {
		return nil, err
	}
	s := &Scaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}
	for i, v := range s.scale {
		if v == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

// Transform returns the scaled copy of x. len(x) must equal the feature count.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(s.mean))
	for i := range s.mean {
		out[i] = (x[i] - s.mean[i]) / s.scale[i]
	}
	return out
}

// NumFeatures returns the number of features the scaler was fit on.
func (s *Scaler) NumFeatures() int {
	return len(s.mean)
}
