// Package metrics provides Prometheus metrics for the course API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "coursehub"

// Manager owns a private registry with the HTTP and store metrics of one
// server instance, so tests and parallel servers never collide on the
// global default registry.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	validationFailures  prometheus.Counter
}

// Option customises a Manager.
type Option func(*options)

type options struct {
	namespace      string
	buckets        []float64
	courseCount    func() float64
	processMetrics bool
}

// WithNamespace sets the metric namespace (default "coursehub").
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithHistogramBuckets overrides the request duration buckets, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithCourseCount exposes the current number of stored courses as a gauge.
func WithCourseCount(fn func() float64) Option {
	return func(o *options) {
		o.courseCount = fn
	}
}

// WithProcessMetrics adds the Go runtime and process collectors.
func WithProcessMetrics() Option {
	return func(o *options) {
		o.processMetrics = true
	}
}

// NewManager creates and registers all metrics.
func NewManager(opts ...Option) *Manager {
	o := &options{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(o)
	}

	m := &Manager{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   o.buckets,
		}, []string{"route", "method"}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "courses",
			Name:      "validation_failures_total",
			Help:      "Course payloads rejected by validation.",
		}),
	}

	m.registry.MustRegister(m.httpRequests, m.httpRequestDuration, m.validationFailures)

	if o.courseCount != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Subsystem: "courses",
			Name:      "stored",
			Help:      "Number of courses currently held in memory.",
		}, o.courseCount))
	}

	if o.processMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// RecordHTTPRequest records one finished request.
func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordValidationFailure counts a rejected course payload.
func (m *Manager) RecordValidationFailure() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
