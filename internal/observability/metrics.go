package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	QuotaRejections  *prometheus.CounterVec
	AIFailuresTotal  prometheus.Counter
	ImportsTotal     *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered against the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyses_total",
				Help: "Total number of resume analyses performed",
			},
			[]string{"endpoint", "tier"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analysis_duration_seconds",
				Help:    "Resume analysis duration in seconds, including the model call",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"endpoint"},
		),
		QuotaRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quota_rejections_total",
				Help: "Total number of requests rejected by quota limits",
			},
			[]string{"endpoint", "tier"},
		),
		AIFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ai_failures_total",
			Help: "Total number of upstream AI call failures",
		}),
		ImportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imports_total",
				Help: "Total number of resume imports",
			},
			[]string{"source", "status"},
		),
	}
}
