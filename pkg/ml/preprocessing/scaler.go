package preprocessing

import (
	"errors"
	"fmt"
	"math"
)

// StandardScaler centres each feature on its training mean and divides by its training
// standard deviation.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s StandardScaler) Validate(featureCount int) error {
	if len(s.Mean) != featureCount {
		return fmt.Errorf("expected %d means, got %d", featureCount, len(s.Mean))
	}
	if len(s.Scale) != featureCount {
		return fmt.Errorf("expected %d scales, got %d", featureCount, len(s.Scale))
	}
	for i := range s.Scale {
		if s.Scale[i] == 0 || math.IsNaN(s.Scale[i]) || math.IsInf(s.Scale[i], 0) {
			return fmt.Errorf("scale %d must be finite and non-zero", i)
		}
		if math.IsNaN(s.Mean[i]) || math.IsInf(s.Mean[i], 0) {
			return fmt.Errorf("mean %d is not finite", i)
		}
	}
	return nil
}

// Transform returns a new vector; vector itself is left untouched.
func (s StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) == 0 {
		return nil, errors.New("vector is empty")
	}
	if len(vector) != len(s.Mean) || len(vector) != len(s.Scale) {
		return nil, fmt.Errorf("vector has %d features, scaler expects %d", len(vector), len(s.Mean))
	}
	scaled := make([]float64, len(vector))
	for i, value := range vector {
		scaled[i] = (value - s.Mean[i]) / s.Scale[i]
		if math.IsNaN(scaled[i]) || math.IsInf(scaled[i], 0) {
			return nil, fmt.Errorf("feature %d scales to a non-finite value", i)
		}
	}
	return scaled, nil
}
