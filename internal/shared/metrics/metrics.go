package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Presign metrics
	SignTotal        *prometheus.CounterVec
	TransferTotal    *prometheus.CounterVec
	TransferDuration *prometheus.HistogramVec
	TransferBytes    *prometheus.CounterVec

	// Storage metrics
	StorageBreakerState *prometheus.GaugeVec
}

// Histogram buckets in seconds. Transfers carry whole object bodies and run longer than API calls.
var (
	httpBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	transferBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
)

// New registers the gateway collectors on reg under namespace.
// A nil reg uses the default prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "objgate"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	httpOpts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: namespace, Subsystem: "http", Name: name, Help: help}
	}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts(httpOpts("requests_total", "HTTP requests served, by route and status class")),
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   httpBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts(httpOpts("requests_in_flight", "HTTP requests currently being served")),
		),

		SignTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "presign",
				Name:      "sign_total",
				Help:      "Total number of presigned URLs requested",
			},
			[]string{"operation", "result"}, // result: ok, error
		),
		TransferTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "presign",
				Name:      "transfer_total",
				Help:      "Total number of transfers executed against presigned URLs",
			},
			[]string{"operation", "result"}, // result: ok, rejected, error
		),
		TransferDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "presign",
				Name:      "transfer_duration_seconds",
				Help:      "Presigned transfer duration in seconds",
				Buckets:   transferBuckets,
			},
			[]string{"operation"},
		),
		TransferBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "presign",
				Name:      "transfer_bytes_total",
				Help:      "Bytes moved through presigned transfers",
			},
			[]string{"operation"},
		),

		StorageBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "storage",
				Name:      "breaker_state",
				Help:      "Storage circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// RecordHTTPRequest records one served request. route is the gin route pattern.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSign records a signing attempt.
func (m *Metrics) RecordSign(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SignTotal.WithLabelValues(operation, result).Inc()
}

// RecordTransfer records one presigned transfer.
func (m *Metrics) RecordTransfer(operation, result string, bytes int64, duration time.Duration) {
	m.TransferTotal.WithLabelValues(operation, result).Inc()
	m.TransferDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if bytes > 0 {
		m.TransferBytes.WithLabelValues(operation).Add(float64(bytes))
	}
}

// SetBreakerState records the numeric state of a circuit breaker.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.StorageBreakerState.WithLabelValues(name).Set(float64(state))
}

// statusClass folds a status code into 2xx..5xx.
func statusClass(code int) string {
	if code < 200 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
