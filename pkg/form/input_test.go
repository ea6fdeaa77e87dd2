package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptica-ai/riskform/pkg/common/models"
)

func scenarioA() url.Values {
	return url.Values{
		"pregnancies":                {"6"},
		"glucose":                    {"148"},
		"blood_pressure":             {"72"},
		"skin_thickness":             {"35"},
		"insulin":                    {"0"},
		"bmi":                        {"33.6"},
		"diabetes_pedigree_function": {"0.627"},
		"age":                        {"50"},
	}
}

func TestParseMeasurements(t *testing.T) {
	m, err := ParseMeasurements(scenarioA(), DefaultFields())
	require.NoError(t, err)
	assert.Equal(t, models.PatientMeasurements{
		Pregnancies: 6, Glucose: 148, BloodPressure: 72, SkinThickness: 35,
		Insulin: 0, BMI: 33.6, Pedigree: 0.627, Age: 50,
	}, m)
	assert.Equal(t, []float64{6, 148, 72, 35, 0, 33.6, 0.627, 50}, m.FeatureVector())
}

func TestParseMeasurementsEmptyFormUsesMinimums(t *testing.T) {
	m, err := ParseMeasurements(url.Values{}, DefaultFields())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMeasurements(), m)
}

func TestParseMeasurementsUpperBoundsAccepted(t *testing.T) {
	values := url.Values{"pregnancies": {"20"}, "age": {"120"}}
	m, err := ParseMeasurements(values, DefaultFields())
	require.NoError(t, err)
	assert.Equal(t, 20, m.Pregnancies)
	assert.Equal(t, 120, m.Age)
}

func TestParseMeasurementsRoundsToWidgetPrecision(t *testing.T) {
	values := scenarioA()
	values.Set("bmi", "33.6049")
	values.Set("diabetes_pedigree_function", "0.62749")
	m, err := ParseMeasurements(values, DefaultFields())
	require.NoError(t, err)
	assert.InDelta(t, 33.60, m.BMI, 1e-9)
	assert.InDelta(t, 0.627, m.Pedigree, 1e-9)
}

func TestParseMeasurementsRejects(t *testing.T) {
	cases := map[string]struct {
		field string
		value string
	}{
		"negative glucose":    {"glucose", "-1"},
		"too many pregnancy":  {"pregnancies", "21"},
		"age zero":            {"age", "0"},
		"age too high":        {"age", "121"},
		"fractional age":      {"age", "30.5"},
		"not a number":        {"insulin", "lots"},
		"nan":                 {"bmi", "NaN"},
		"infinite":            {"skin_thickness", "+Inf"},
		"fractional pregnant": {"pregnancies", "1.5"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			values := scenarioA()
			values.Set(tc.field, tc.value)
			_, err := ParseMeasurements(values, DefaultFields())
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	err := Validate(models.PatientMeasurements{Pregnancies: 30, Age: 0})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be at most 20", ve.Fields["pregnancies"])
	assert.Equal(t, "must be at least 1", ve.Fields["age"])
	assert.Contains(t, err.Error(), "age: must be at least 1")
}

func TestFieldSpecFormatting(t *testing.T) {
	fields := DefaultFields()
	require.Len(t, fields, models.FeatureCount)
	for i, name := range models.FeatureNames() {
		assert.Equal(t, name, fields[i].Name)
	}

	bmi := fields[5]
	assert.Equal(t, "0.01", bmi.Step())
	assert.Equal(t, "33.60", bmi.Format(33.6))
	dpf := fields[6]
	assert.Equal(t, "0.001", dpf.Step())
	assert.Equal(t, "1", fields[0].Step())
}
