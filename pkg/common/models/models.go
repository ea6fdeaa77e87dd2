package models

import "time"

// Feature names in the order the scaler and classifier were fit with.
const (
	FeaturePregnancies   = "pregnancies"
	FeatureGlucose       = "glucose"
	FeatureBloodPressure = "blood_pressure"
	FeatureSkinThickness = "skin_thickness"
	FeatureInsulin       = "insulin"
	FeatureBMI           = "bmi"
	FeaturePedigree      = "diabetes_pedigree_function"
	FeatureAge           = "age"
)

// FeatureCount is the length of every feature vector.
const FeatureCount = 8

// FeatureNames returns the fixed feature order. Reordering it silently corrupts predictions.
func FeatureNames() []string {
	return []string{
		FeaturePregnancies,
		FeatureGlucose,
		FeatureBloodPressure,
		FeatureSkinThickness,
		FeatureInsulin,
		FeatureBMI,
		FeaturePedigree,
		FeatureAge,
	}
}

// PatientMeasurements is one submitted form.
type PatientMeasurements struct {
	Pregnancies   int     `json:"pregnancies" validate:"gte=0,lte=20"`
	Glucose       float64 `json:"glucose" validate:"gte=0"`
	BloodPressure float64 `json:"blood_pressure" validate:"gte=0"`
	SkinThickness float64 `json:"skin_thickness" validate:"gte=0"`
	Insulin       float64 `json:"insulin" validate:"gte=0"`
	BMI           float64 `json:"bmi" validate:"gte=0"`
	Pedigree      float64 `json:"diabetes_pedigree_function" validate:"gte=0"`
	Age           int     `json:"age" validate:"gte=1,lte=120"`
}

// DefaultMeasurements is what an unedited form submits.
func DefaultMeasurements() PatientMeasurements {
	return PatientMeasurements{Age: 1}
}

// FeatureVector assembles the measurements in FeatureNames order.
func (m PatientMeasurements) FeatureVector() []float64 {
	return []float64{
		float64(m.Pregnancies),
		m.Glucose,
		m.BloodPressure,
		m.SkinThickness,
		m.Insulin,
		m.BMI,
		m.Pedigree,
		float64(m.Age),
	}
}

// Values maps feature name to value.
func (m PatientMeasurements) Values() map[string]float64 {
	names := FeatureNames()
	vector := m.FeatureVector()
	values := make(map[string]float64, len(names))
	for i, name := range names {
		values[name] = vector[i]
	}
	return values
}

type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// PredictionResult is what the page shows after a submit.
type PredictionResult struct {
	Label   int           `json:"label"`
	Risk    RiskLevel     `json:"risk"`
	Message string        `json:"message"`
	Latency time.Duration `json:"latency"`
}

// HighRisk reports whether the result should be rendered in the error style.
func (r PredictionResult) HighRisk() bool {
	return r.Risk == RiskHigh
}
