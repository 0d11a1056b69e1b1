// Package metrics exposes Prometheus instrumentation for launchpad reports.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the launchpad server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Invocations     *prometheus.CounterVec
	Errors          *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec
	RowsFetched     *prometheus.HistogramVec
}

var _ contract.MetricsRecorder = &Metrics{} // Compile-time check

// NewMetrics creates the metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_tool_invocations_total",
			Help: "Total number of report invocations by tool and status",
		}, []string{"tool", "status"}),

		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_tool_errors_total",
			Help: "Total number of failed reports by tool and error kind",
		}, []string{"tool", "kind"}),

		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchpad_upstream_request_seconds",
			Help:    "Latency of upstream query result requests in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
		}, []string{"status"}),

		RowsFetched: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchpad_rows_fetched",
			Help:    "Number of upstream rows consumed per successful report",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		}, []string{"tool"}),
	}
}

// RecordInvocation counts one report and, on failure, its error kind.
func (m *Metrics) RecordInvocation(tool string, status schema.InvocationStatus, kind schema.ErrorKind) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(tool, string(status)).Inc()
	if kind != "" {
		m.Errors.WithLabelValues(tool, string(kind)).Inc()
	}
}

// RecordRows observes the row count of a successful report.
func (m *Metrics) RecordRows(tool string, rows int) {
	if m == nil {
		return
	}
	m.RowsFetched.WithLabelValues(tool).Observe(float64(rows))
}

// ObserveUpstream records one upstream call. Status 0 means no response was received.
func (m *Metrics) ObserveUpstream(status int, seconds float64) {
	if m == nil {
		return
	}
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.UpstreamLatency.WithLabelValues(label).Observe(seconds)
}

// Registry returns the registry the metrics live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
