package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one report run. Each run gets
// its own registry so the textfile only contains sbreport series.
type Metrics struct {
	registry *prometheus.Registry

	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	ColumnMean         *prometheus.GaugeVec
	LastSuccess        prometheus.Gauge
}

// NewMetrics creates and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbreport_invocations_total",
			Help: "Benchmark process invocations by benchmark and outcome",
		},
		[]string{"benchmark", "status"},
	)

	m.InvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sbreport_invocation_duration_seconds",
			Help:    "Wall time of one benchmark process invocation",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"benchmark"},
	)

	m.ColumnMean = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sbreport_metric_mean",
			Help: "Mean of a parsed sysbench metric across repeats",
		},
		[]string{"benchmark", "metric"},
	)

	m.LastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sbreport_last_success_timestamp_seconds",
			Help: "Unix time of the last complete report",
		},
	)

	m.registry.MustRegister(m.Invocations, m.InvocationDuration, m.ColumnMean, m.LastSuccess)
	return m
}

// ObserveInvocation records one benchmark process run.
func (m *Metrics) ObserveInvocation(benchmark string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Invocations.WithLabelValues(benchmark, status).Inc()
	m.InvocationDuration.WithLabelValues(benchmark).Observe(d.Seconds())
}

// SetMeans publishes the averaged columns of one benchmark table.
func (m *Metrics) SetMeans(benchmark string, labels []string, means []float64) {
	for i, label := range labels {
		if i >= len(means) {
			break
		}
		m.ColumnMean.WithLabelValues(benchmark, label).Set(means[i])
	}
}

// MarkSuccess stamps the completion time of a full report.
func (m *Metrics) MarkSuccess(t time.Time) {
	m.LastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

// Handler serves the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves the metrics on addr until the server fails.
func StartMetricsServer(addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	LogInfo("Starting metrics server", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
