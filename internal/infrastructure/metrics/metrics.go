package metrics

import (
	"strconv"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "bfinancial"

// Metrics holds the relay's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec
	GatewayCircuitState    prometheus.Gauge

	// Reconciliation metrics
	VerificationFetchesTotal *prometheus.CounterVec
	VerificationsInFlight    prometheus.Gauge
	VerificationsTotal       *prometheus.CounterVec
	VerificationDuration     prometheus.Histogram

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

var _ interfaces.IVerificationMetrics = (*Metrics)(nil)

// New registers every collector on reg (prometheus.DefaultRegisterer when nil).
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of payment gateway calls",
			},
			[]string{"operation", "result"},
		),
		GatewayRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Payment gateway call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		GatewayCircuitState: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "circuit_state",
				Help:      "Gateway circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
		),

		VerificationFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verification",
				Name:      "fetches_total",
				Help:      "Status fetches performed by reconciliation loops",
			},
			[]string{"result"},
		),
		VerificationsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "verification",
				Name:      "in_flight",
				Help:      "Reconciliation loops currently running",
			},
		),
		VerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verification",
				Name:      "outcomes_total",
				Help:      "Finished reconciliations by outcome",
			},
			[]string{"outcome"}, // success or a failure kind
		),
		VerificationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "verification",
				Name:      "duration_seconds",
				Help:      "Reconciliation duration in seconds",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "status_hits_total",
				Help:      "Status lookups served from cache",
			},
		),
		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "status_misses_total",
				Help:      "Status lookups not found in cache",
			},
		),
	}
}

// --- Convenience methods ---

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordGatewayCall(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestsTotal.WithLabelValues(operation, result).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCircuitState takes the numeric gobreaker state.
func (m *Metrics) SetCircuitState(state int) {
	if m == nil {
		return
	}
	m.GatewayCircuitState.Set(float64(state))
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) FetchObserved(result string) {
	if m == nil {
		return
	}
	m.VerificationFetchesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) VerificationStarted() {
	if m == nil {
		return
	}
	m.VerificationsInFlight.Inc()
}

func (m *Metrics) VerificationFinished(v entities.Verification, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.VerificationsInFlight.Dec()
	outcome := "success"
	if !v.Succeeded() {
		outcome = v.Kind()
	}
	m.VerificationsTotal.WithLabelValues(outcome).Inc()
	m.VerificationDuration.Observe(elapsed.Seconds())
}

// GinMiddleware records every request under its route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return strconv.Itoa(code)
	}
}
