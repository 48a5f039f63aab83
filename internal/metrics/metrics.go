// internal/metrics/metrics.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GRPCServerHandlingSeconds is a histogram for gRPC server request latencies
	GRPCServerHandlingSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_server_handling_seconds",
			Help:    "Histogram of response latency (seconds) of gRPC that had been application-level handled by the server.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "code"},
	)

	// HTTPRequestSeconds is a histogram for HTTP API latencies
	HTTPRequestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP API request latency (seconds).",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"path", "code"},
	)

	// ModelInvocationSeconds is a histogram for single model calls
	ModelInvocationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_invocation_seconds",
			Help:    "Histogram of single model invocation latency (seconds).",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"model", "member", "outcome"},
	)

	// EnsembleBatchSize is a histogram for tracking description batch sizes
	EnsembleBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ensemble_batch_size",
			Help:    "Histogram of description batch sizes for ensemble requests.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		},
	)

	// CaptionSteps is a histogram of decoding steps per caption
	CaptionSteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "caption_decode_steps",
			Help:    "Histogram of greedy decoding steps per caption.",
			Buckets: []float64{1, 2, 4, 8, 12, 16, 24, 35, 50},
		},
	)

	// CaptionStops counts why decoding ended
	CaptionStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caption_stops_total",
			Help: "Number of finished captions by stop reason.",
		},
		[]string{"reason"},
	)

	// CacheRequests counts cache lookups
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Number of result cache lookups by kind and result.",
		},
		[]string{"kind", "result"},
	)

	// HealthStatus is a gauge indicating the health status of the service
	HealthStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "health_status",
			Help: "Health status of the service (1 = healthy, 0 = unhealthy).",
		},
	)
)

// RecordGRPCLatency records the latency of a gRPC method call
func RecordGRPCLatency(method, code string, seconds float64) {
	GRPCServerHandlingSeconds.WithLabelValues(method, code).Observe(seconds)
}

// RecordHTTPLatency records the latency of an HTTP API call
func RecordHTTPLatency(path string, code int, seconds float64) {
	HTTPRequestSeconds.WithLabelValues(path, strconv.Itoa(code)).Observe(seconds)
}

// RecordModelInvocation records one model call. member is -1 for single models.
func RecordModelInvocation(model string, member int, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m := ""
	if member >= 0 {
		m = strconv.Itoa(member)
	}
	ModelInvocationSeconds.WithLabelValues(model, m, outcome).Observe(seconds)
}

// RecordEnsembleBatch records the batch size for an ensemble request
func RecordEnsembleBatch(size int) {
	EnsembleBatchSize.Observe(float64(size))
}

// RecordCaption records a finished decode
func RecordCaption(steps int, reason string) {
	CaptionSteps.Observe(float64(steps))
	CaptionStops.WithLabelValues(reason).Inc()
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(kind, result).Inc()
}

// SetHealthy sets the health status to healthy
func SetHealthy() {
	HealthStatus.Set(1)
}

// SetUnhealthy sets the health status to unhealthy
func SetUnhealthy() {
	HealthStatus.Set(0)
}
