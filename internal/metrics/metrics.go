// Package metrics exposes Prometheus collectors for the age calculator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-age/internal/config"
)

// Metrics holds Prometheus collectors for calculations and HTTP traffic.
// Each instance owns its registry, so several can coexist in one process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Calculations       *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	CalendarExports    prometheus.Counter

	// Performance metrics
	EndpointLatency *prometheus.HistogramVec
}

// New registers and returns the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricCalculations,
			Help:      "Total number of successful date difference calculations, labeled by frontend",
		}, []string{config.MetricLabelFront}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricValidationErr,
			Help:      "Total number of rejected inputs, labeled by frontend, field and outcome",
		}, []string{config.MetricLabelFront, config.MetricLabelField, config.MetricLabelKind}),
		CalendarExports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricExports,
			Help:      "Total number of anniversary calendars rendered",
		}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricLatency,
			Help:      "Latency of HTTP endpoints in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{config.MetricLabelRoute}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementCalculations(frontend string) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(frontend).Inc()
}

func (m *Metrics) IncrementValidationFailure(frontend, field, outcome string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(frontend, field, outcome).Inc()
}

func (m *Metrics) IncrementCalendarExports() {
	if m == nil {
		return
	}
	m.CalendarExports.Inc()
}

func (m *Metrics) ObserveEndpointLatency(route string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(route).Observe(durationSeconds)
}
