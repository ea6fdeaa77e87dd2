package form

import (
	"math"
	"strconv"

	"github.com/synaptica-ai/riskform/pkg/common/models"
)

// FieldSpec describes one numeric input. Name, bounds and precision are fixed; Label and
// Help can be overridden from the UI config.
type FieldSpec struct {
	Name     string
	Label    string
	Help     string
	Min      float64
	Max      float64
	HasMax   bool
	Decimals int
	Column   int
}

// Step is the HTML step attribute matching the field precision.
func (f FieldSpec) Step() string {
	if f.Decimals == 0 {
		return "1"
	}
	return strconv.FormatFloat(math.Pow10(-f.Decimals), 'f', f.Decimals, 64)
}

func (f FieldSpec) Format(value float64) string {
	return strconv.FormatFloat(value, 'f', f.Decimals, 64)
}

// Round applies the field precision.
func (f FieldSpec) Round(value float64) float64 {
	scale := math.Pow10(f.Decimals)
	return math.Round(value*scale) / scale
}

// DefaultFields lists the inputs in models.FeatureNames order.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{Name: models.FeaturePregnancies, Label: "🤰 Pregnancies", Help: "Number of times pregnant", Min: 0, Max: 20, HasMax: true, Column: 1},
		{Name: models.FeatureGlucose, Label: "🩸 Glucose Level", Help: "Plasma glucose concentration", Min: 0, Column: 1},
		{Name: models.FeatureBloodPressure, Label: "💓 Blood Pressure", Min: 0, Column: 1},
		{Name: models.FeatureSkinThickness, Label: "📏 Skin Thickness", Min: 0, Column: 1},
		{Name: models.FeatureInsulin, Label: "💉 Insulin Level", Min: 0, Column: 2},
		{Name: models.FeatureBMI, Label: "⚖️ BMI", Min: 0, Decimals: 2, Column: 2},
		{Name: models.FeaturePedigree, Label: "📊 Diabetes Pedigree Function", Min: 0, Decimals: 3, Column: 2},
		{Name: models.FeatureAge, Label: "🎂 Age", Min: 1, Max: 120, HasMax: true, Column: 2},
	}
}
