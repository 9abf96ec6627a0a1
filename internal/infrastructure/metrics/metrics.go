package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chat",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Provider call counters
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "gateway",
			Name:      "provider_requests_total",
			Help:      "Total language model provider invocations",
		},
		[]string{"provider", "status"},
	)

	// Provider call duration histogram
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chat",
			Subsystem: "gateway",
			Name:      "provider_duration_seconds",
			Help:      "Language model provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// Stored message counter
	MessagesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat",
			Subsystem: "gateway",
			Name:      "messages_stored_total",
			Help:      "Total chat messages appended to the log",
		},
		[]string{"role"},
	)
)

// RecordRequest records HTTP request metrics.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordProviderCall records one provider invocation.
func RecordProviderCall(provider, status string, elapsed time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordMessageStored counts an appended message by role.
func RecordMessageStored(role string) {
	MessagesStoredTotal.WithLabelValues(role).Inc()
}
