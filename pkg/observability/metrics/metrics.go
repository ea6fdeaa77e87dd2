package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskform_predictions_total",
		Help: "Predictions served, by risk level.",
	}, []string{"risk"})

	predictionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskform_prediction_errors_total",
		Help: "Predictions that failed inside the scaler or classifier, by kind.",
	}, []string{"kind"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskform_prediction_duration_seconds",
		Help:    "Time spent in scaler transform and classifier predict.",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
	})

	formRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskform_form_rejected_total",
		Help: "Form submissions rejected by server-side validation.",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskform_http_requests_total",
		Help: "HTTP requests, by method and status code.",
	}, []string{"method", "code"})
)

func ObservePrediction(risk string, latency time.Duration) {
	predictionsTotal.WithLabelValues(risk).Inc()
	predictionDuration.Observe(latency.Seconds())
}

func ObservePredictionError(kind string) {
	predictionErrorsTotal.WithLabelValues(kind).Inc()
}

func ObserveFormRejected() {
	formRejectedTotal.Inc()
}

func ObserveHTTPRequest(method string, code int) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// Handler serves the default registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
