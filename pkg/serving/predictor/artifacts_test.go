package predictor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptica-ai/riskform/pkg/common/models"
)

// fixture describes the two artifact files written by writeArtifacts.
type fixture struct {
	scaler map[string]interface{}
	model  map[string]interface{}
}

func defaultFixture() fixture {
	names := models.FeatureNames()
	return fixture{
		scaler: map[string]interface{}{
			"type":          "standard",
			"feature_names": names,
			"mean":          []float64{3.8, 120.9, 69.1, 20.5, 79.8, 32.0, 0.47, 33.2},
			"scale":         []float64{3.4, 32.0, 19.4, 15.9, 115.2, 7.9, 0.33, 11.8},
		},
		model: map[string]interface{}{
			"type":          "classification",
			"algorithm":     "logistic_regression",
			"feature_names": names,
			"weights": map[string]interface{}{
				"bias":         -0.87,
				"coefficients": []float64{0.41, 1.11, -0.25, 0.01, -0.13, 0.69, 0.31, 0.17},
			},
		},
	}
}

func writeArtifacts(t *testing.T, f fixture) (scalerPath, modelPath string) {
	t.Helper()
	dir := t.TempDir()
	scalerPath = filepath.Join(dir, "scaler.json")
	modelPath = filepath.Join(dir, "model.json")
	writeJSON(t, scalerPath, map[string]interface{}{"scaler": f.scaler})
	writeJSON(t, modelPath, map[string]interface{}{"model": f.model})
	return scalerPath, modelPath
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	content, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0o600))
}

func TestLoadArtifacts(t *testing.T) {
	scalerPath, modelPath := writeArtifacts(t, defaultFixture())

	artifacts, err := LoadArtifacts(scalerPath, modelPath)
	require.NoError(t, err)
	assert.Equal(t, "logistic_regression", artifacts.Algorithm)
	assert.Equal(t, modelPath, artifacts.ModelPath)

	classifier, ok := artifacts.Model.(LogisticClassifier)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 1}, classifier.Classes)
	assert.InDelta(t, 0.5, classifier.Threshold, 1e-12)
}

func TestLoadArtifactsMissingFile(t *testing.T) {
	scalerPath, modelPath := writeArtifacts(t, defaultFixture())

	_, err := LoadArtifacts(scalerPath, modelPath+".missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadArtifacts(scalerPath+".missing", modelPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadArtifactsCorruptFile(t *testing.T) {
	scalerPath, modelPath := writeArtifacts(t, defaultFixture())
	require.NoError(t, os.WriteFile(modelPath, []byte("{not json"), 0o600))

	_, err := LoadArtifacts(scalerPath, modelPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestLoadArtifactsFeatureOrderMismatch(t *testing.T) {
	f := defaultFixture()
	names := models.FeatureNames()
	names[0], names[1] = names[1], names[0]
	f.scaler["feature_names"] = names
	scalerPath, modelPath := writeArtifacts(t, f)

	_, err := LoadArtifacts(scalerPath, modelPath)
	assert.ErrorIs(t, err, ErrFeatureOrder)
}

func TestLoadArtifactsWithoutFeatureNames(t *testing.T) {
	f := defaultFixture()
	delete(f.scaler, "feature_names")
	delete(f.model, "feature_names")
	scalerPath, modelPath := writeArtifacts(t, f)

	_, err := LoadArtifacts(scalerPath, modelPath)
	assert.NoError(t, err)
}

func TestLoadArtifactsDimensionMismatch(t *testing.T) {
	f := defaultFixture()
	f.model["weights"] = map[string]interface{}{"bias": 0, "coefficients": []float64{1, 2, 3}}
	scalerPath, modelPath := writeArtifacts(t, f)

	_, err := LoadArtifacts(scalerPath, modelPath)
	assert.ErrorIs(t, err, ErrDimension)

	f = defaultFixture()
	f.scaler["scale"] = []float64{1, 1, 1, 1, 0, 1, 1, 1}
	scalerPath, modelPath = writeArtifacts(t, f)

	_, err = LoadArtifacts(scalerPath, modelPath)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestLoadArtifactsRejectsBadModelSettings(t *testing.T) {
	cases := map[string]func(f fixture){
		"algorithm": func(f fixture) { f.model["algorithm"] = "random_forest" },
		"classes":   func(f fixture) { f.model["classes"] = []int{0, 1, 2} },
		"threshold": func(f fixture) { f.model["threshold"] = 1.5 },
		"scaler":    func(f fixture) { f.scaler["type"] = "minmax" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := defaultFixture()
			mutate(f)
			scalerPath, modelPath := writeArtifacts(t, f)
			_, err := LoadArtifacts(scalerPath, modelPath)
			assert.Error(t, err)
		})
	}
}

func TestLoadShippedArtifacts(t *testing.T) {
	artifacts, err := LoadArtifacts(
		filepath.Join("..", "..", "..", "artifacts", "diabetes_scaler.json"),
		filepath.Join("..", "..", "..", "artifacts", "diabetes_model.json"),
	)
	require.NoError(t, err)

	scenarioA := models.PatientMeasurements{
		Pregnancies: 6, Glucose: 148, BloodPressure: 72, SkinThickness: 35,
		Insulin: 0, BMI: 33.6, Pedigree: 0.627, Age: 50,
	}
	result, err := NewPredictor(artifacts).Predict(scenarioA)
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, result.Risk)
	assert.Equal(t, HighRiskMessage, result.Message)

	lean := models.PatientMeasurements{
		Pregnancies: 1, Glucose: 85, BloodPressure: 66, SkinThickness: 29,
		Insulin: 0, BMI: 26.6, Pedigree: 0.351, Age: 31,
	}
	result, err = NewPredictor(artifacts).Predict(lean)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLow, result.Risk)
	assert.Equal(t, LowRiskMessage, result.Message)
}
