package form

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/synaptica-ai/riskform/pkg/common/logger"
	"github.com/synaptica-ai/riskform/pkg/common/models"
	"github.com/synaptica-ai/riskform/pkg/observability/metrics"
)

const predictionFailedMessage = "Prediction failed. No result is available for this submission."

// Predictor is the prediction pipeline behind the form.
type Predictor interface {
	Predict(m models.PatientMeasurements) (models.PredictionResult, error)
}

type Handler struct {
	predictor Predictor
	ui        UIConfig
	fields    []FieldSpec
}

func NewHandler(predictor Predictor, ui UIConfig) *Handler {
	return &Handler{predictor: predictor, ui: ui, fields: ui.FieldSpecs()}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.handleForm).Methods(http.MethodGet)
	r.HandleFunc("/", h.handleSubmit).Methods(http.MethodPost)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	data := newPageData(h.ui, h.fields, models.DefaultMeasurements().Values(), nil, nil)
	if err := render(w, http.StatusOK, data); err != nil {
		logger.Log.WithError(err).Error("failed to render form")
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get("X-Request-ID")

	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	measurements, err := ParseMeasurements(r.PostForm, h.fields)
	if err != nil {
		var ve ValidationError
		if !errors.As(err, &ve) {
			logger.Log.WithError(err).WithField("request_id", reqID).Error("failed to parse form")
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		metrics.ObserveFormRejected()
		logger.Log.WithFields(map[string]interface{}{
			"request_id": reqID,
			"fields":     len(ve.Fields),
		}).Info("Form submission rejected")

		data := newPageData(h.ui, h.fields, nil, postedValues(r, h.fields), ve.Fields)
		data.FormError = "Please correct the highlighted fields."
		if err := render(w, http.StatusBadRequest, data); err != nil {
			logger.Log.WithError(err).Error("failed to render form")
		}
		return
	}

	result, err := h.predictor.Predict(measurements)
	data := newPageData(h.ui, h.fields, measurements.Values(), nil, nil)
	if err != nil {
		logger.Log.WithError(err).WithField("request_id", reqID).Error("Prediction failed")
		data.Error = predictionFailedMessage
		if err := render(w, http.StatusInternalServerError, data); err != nil {
			logger.Log.WithError(err).Error("failed to render form")
		}
		return
	}

	logger.Log.WithFields(map[string]interface{}{
		"request_id": reqID,
		"risk":       result.Risk,
		"latency_ms": result.Latency.Milliseconds(),
	}).Info("Prediction completed")

	data.Result = &result
	if err := render(w, http.StatusOK, data); err != nil {
		logger.Log.WithError(err).Error("failed to render result")
	}
}

func postedValues(r *http.Request, fields []FieldSpec) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field.Name] = r.PostForm.Get(field.Name)
	}
	return values
}
