package linear

import (
	"math"
	"testing"
)

func TestPredictZeroWeightsIsHalf(t *testing.T) {
	p, err := Predict(Weights{Coefficients: []float64{0, 0}}, []float64{3, -7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %f", p)
	}
}

func TestPredictSign(t *testing.T) {
	w := Weights{Bias: -1, Coefficients: []float64{2}}
	high, _ := Predict(w, []float64{3})
	low, _ := Predict(w, []float64{-3})
	if high <= 0.5 || low >= 0.5 {
		t.Fatalf("unexpected probabilities high=%f low=%f", high, low)
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	if _, err := Predict(Weights{Coefficients: []float64{1, 2}}, []float64{1}); err == nil {
		t.Fatal("expected error for short sample")
	}
}

func TestValidate(t *testing.T) {
	if err := (Weights{Coefficients: []float64{1, 2}}).Validate(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Weights{Coefficients: []float64{1}}).Validate(2); err == nil {
		t.Fatal("expected count error")
	}
	if err := (Weights{Coefficients: []float64{math.NaN(), 1}}).Validate(2); err == nil {
		t.Fatal("expected non-finite error")
	}
}
