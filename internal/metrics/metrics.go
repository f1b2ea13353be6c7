// Package metrics exposes Prometheus collectors for the HTTP server,
// authentication flow and GraphQL resolvers.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth event labels.
const (
	AuthLoginSuccess  = "login_success"
	AuthLoginFailure  = "login_failure"
	AuthRegister      = "register"
	AuthTokenRejected = "token_rejected"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "splitledger",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splitledger",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "splitledger",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path"},
	)

	authEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splitledger",
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Authentication events by outcome.",
		},
		[]string{"event"},
	)

	resolverErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splitledger",
			Subsystem: "graphql",
			Name:      "resolver_errors_total",
			Help:      "GraphQL resolver errors by error code.",
		},
		[]string{"code"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		authEvents,
		resolverErrors,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordAuthEvent counts one authentication event.
func RecordAuthEvent(event string) {
	authEvents.WithLabelValues(event).Inc()
}

// RecordResolverError counts one GraphQL resolver error with the given code.
func RecordResolverError(code string) {
	resolverErrors.WithLabelValues(code).Inc()
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := routeLabel(r.URL.Path)
		httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// RPCPathPrefix is the route prefix of the Connect services.
const RPCPathPrefix = "/splitledger.v1."

// routeLabel keeps label cardinality bounded: only known routes are reported verbatim.
func routeLabel(path string) string {
	switch {
	case path == "/graphql", path == "/healthz":
		return path
	case strings.HasPrefix(path, RPCPathPrefix):
		return path
	default:
		return "other"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets streaming responses pass through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
