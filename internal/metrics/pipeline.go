package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics: model generation and recommendation API calls.
var (
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftrec",
			Name:      "model_requests_total",
			Help:      "Total number of model generation requests",
		},
		[]string{"provider", "model", "stage", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giftrec",
			Name:      "model_request_duration_seconds",
			Help:      "Model generation request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "model", "stage"},
	)

	RecommendationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftrec",
			Name:      "recommendation_requests_total",
			Help:      "Total number of recommendation API requests",
		},
		[]string{"status"},
	)

	RecommendationRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "giftrec",
			Name:      "recommendation_request_duration_seconds",
			Help:      "Recommendation API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(RecommendationRequestsTotal)
	prometheus.MustRegister(RecommendationRequestDuration)
	pipelineMetricsRegistered = true
}
