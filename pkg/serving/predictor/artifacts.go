package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/synaptica-ai/riskform/pkg/common/models"
	"github.com/synaptica-ai/riskform/pkg/ml/linear"
	"github.com/synaptica-ai/riskform/pkg/ml/preprocessing"
)

var (
	ErrFeatureOrder = errors.New("artifact feature order does not match form order")
	ErrDimension    = errors.New("artifact dimension mismatch")
)

// Scaler normalizes a raw feature vector with parameters fixed at training time.
type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a class label.
type Classifier interface {
	Predict(scaled []float64) (int, error)
}

type ModelArtifact struct {
	Model struct {
		Type         string         `json:"type"`
		Algorithm    string         `json:"algorithm"`
		FeatureNames []string       `json:"feature_names"`
		Weights      linear.Weights `json:"weights"`
		Classes      []int          `json:"classes"`
		Threshold    float64        `json:"threshold"`
	} `json:"model"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type ScalerArtifact struct {
	Scaler struct {
		Type         string    `json:"type"`
		FeatureNames []string  `json:"feature_names"`
		Mean         []float64 `json:"mean"`
		Scale        []float64 `json:"scale"`
	} `json:"scaler"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LogisticClassifier thresholds a logistic probability into one of two classes.
type LogisticClassifier struct {
	Weights   linear.Weights
	Classes   [2]int
	Threshold float64
}

func (c LogisticClassifier) Predict(scaled []float64) (int, error) {
	p, err := linear.Predict(c.Weights, scaled)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) {
		return 0, errors.New("classifier produced a NaN probability")
	}
	if p >= c.Threshold {
		return c.Classes[1], nil
	}
	return c.Classes[0], nil
}

// Artifacts holds the loaded scaler and classifier. It is built once at startup and
// shared read-only by every request.
type Artifacts struct {
	Scaler     Scaler
	Model      Classifier
	ModelPath  string
	ScalerPath string
	Algorithm  string
}

// LoadArtifacts reads both artifact files. Any error means the process must not serve.
func LoadArtifacts(scalerPath, modelPath string) (*Artifacts, error) {
	scaler, err := loadScaler(scalerPath)
	if err != nil {
		return nil, fmt.Errorf("load scaler %s: %w", scalerPath, err)
	}
	model, algorithm, err := loadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}

	return &Artifacts{
		Scaler:     scaler,
		Model:      model,
		ModelPath:  modelPath,
		ScalerPath: scalerPath,
		Algorithm:  algorithm,
	}, nil
}

func loadScaler(path string) (preprocessing.StandardScaler, error) {
	var artifact ScalerArtifact
	if err := readJSON(path, &artifact); err != nil {
		return preprocessing.StandardScaler{}, err
	}
	if t := artifact.Scaler.Type; t != "" && t != "standard" {
		return preprocessing.StandardScaler{}, fmt.Errorf("unsupported scaler type %q", t)
	}
	if err := checkFeatureNames(artifact.Scaler.FeatureNames); err != nil {
		return preprocessing.StandardScaler{}, err
	}
	scaler := preprocessing.StandardScaler{Mean: artifact.Scaler.Mean, Scale: artifact.Scaler.Scale}
	if err := scaler.Validate(models.FeatureCount); err != nil {
		return preprocessing.StandardScaler{}, fmt.Errorf("%w: %v", ErrDimension, err)
	}
	return scaler, nil
}

func loadModel(path string) (LogisticClassifier, string, error) {
	var artifact ModelArtifact
	if err := readJSON(path, &artifact); err != nil {
		return LogisticClassifier{}, "", err
	}
	m := artifact.Model
	if m.Algorithm == "" {
		m.Algorithm = "logistic_regression"
	}
	if m.Algorithm != "logistic_regression" {
		return LogisticClassifier{}, "", fmt.Errorf("unsupported algorithm %q", m.Algorithm)
	}
	if err := checkFeatureNames(m.FeatureNames); err != nil {
		return LogisticClassifier{}, "", err
	}
	if err := m.Weights.Validate(models.FeatureCount); err != nil {
		return LogisticClassifier{}, "", fmt.Errorf("%w: %v", ErrDimension, err)
	}

	classifier := LogisticClassifier{Weights: m.Weights, Classes: [2]int{0, 1}, Threshold: 0.5}
	if m.Classes != nil {
		if len(m.Classes) != 2 {
			return LogisticClassifier{}, "", fmt.Errorf("binary classifier needs 2 classes, got %d", len(m.Classes))
		}
		classifier.Classes = [2]int{m.Classes[0], m.Classes[1]}
	}
	if m.Threshold != 0 {
		if m.Threshold <= 0 || m.Threshold >= 1 {
			return LogisticClassifier{}, "", fmt.Errorf("threshold %v outside (0,1)", m.Threshold)
		}
		classifier.Threshold = m.Threshold
	}
	return classifier, m.Algorithm, nil
}

// checkFeatureNames accepts an artifact that omits feature names; when present they must
// match the form order exactly.
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	expected := models.FeatureNames()
	if len(names) != len(expected) {
		return fmt.Errorf("%w: got %d names, want %d", ErrFeatureOrder, len(names), len(expected))
	}
	for i, name := range names {
		if name != expected[i] {
			return fmt.Errorf("%w: position %d is %q, want %q", ErrFeatureOrder, i, name, expected[i])
		}
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
