package predictor

import (
	"errors"
	"fmt"
	"time"

	"github.com/synaptica-ai/riskform/pkg/common/logger"
	"github.com/synaptica-ai/riskform/pkg/common/models"
	"github.com/synaptica-ai/riskform/pkg/observability/metrics"
)

const (
	HighRiskMessage = "⚠️ High Risk of Diabetes Detected"
	LowRiskMessage  = "✅ Low Risk of Diabetes"
)

var ErrUnexpectedLabel = errors.New("classifier returned unexpected label")

type Predictor struct {
	artifacts *Artifacts
	now       func() time.Time
}

func NewPredictor(artifacts *Artifacts) *Predictor {
	return &Predictor{artifacts: artifacts, now: time.Now}
}

// Predict runs one measurement set through scaler and classifier. It holds no state
// between calls.
func (p *Predictor) Predict(m models.PatientMeasurements) (models.PredictionResult, error) {
	start := p.now()

	result, err := p.predict(m)
	latency := p.now().Sub(start)
	if err != nil {
		metrics.ObservePredictionError(errorKind(err))
		return models.PredictionResult{}, err
	}

	result.Latency = latency
	metrics.ObservePrediction(string(result.Risk), latency)

	logger.Log.WithFields(map[string]interface{}{
		"label":      result.Label,
		"risk":       result.Risk,
		"latency_us": latency.Microseconds(),
	}).Debug("Prediction computed")
	return result, nil
}

func (p *Predictor) predict(m models.PatientMeasurements) (models.PredictionResult, error) {
	if p.artifacts == nil {
		return models.PredictionResult{}, errors.New("predictor has no artifacts")
	}
	scaled, err := p.artifacts.Scaler.Transform(m.FeatureVector())
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("scaler transform: %w", err)
	}
	label, err := p.artifacts.Model.Predict(scaled)
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("model predict: %w", err)
	}
	return Classify(label)
}

// Classify maps a binary label to its result. Labels other than 0 and 1 are errors.
func Classify(label int) (models.PredictionResult, error) {
	switch label {
	case 1:
		return models.PredictionResult{Label: 1, Risk: models.RiskHigh, Message: HighRiskMessage}, nil
	case 0:
		return models.PredictionResult{Label: 0, Risk: models.RiskLow, Message: LowRiskMessage}, nil
	default:
		return models.PredictionResult{}, fmt.Errorf("%w: %d", ErrUnexpectedLabel, label)
	}
}

func errorKind(err error) string {
	if errors.Is(err, ErrUnexpectedLabel) {
		return "unexpected_label"
	}
	return "invocation"
}
