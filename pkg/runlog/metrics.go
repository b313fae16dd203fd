package runlog

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for retention activity.
type Metrics struct {
	registry *prometheus.Registry

	PurgePassesTotal  prometheus.Counter
	FilesDeletedTotal prometheus.Counter
	FilesSkippedTotal prometheus.Counter
}

// NewMetrics creates and registers all retention metrics on a private
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		PurgePassesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "runlog_purge_passes_total",
				Help: "Total number of retention passes run",
			},
		),
		FilesDeletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "runlog_files_deleted_total",
				Help: "Total number of log files deleted by retention",
			},
		),
		FilesSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "runlog_files_skipped_total",
				Help: "Total number of deletion candidates that could not be removed",
			},
		),
	}

	registry.MustRegister(
		m.PurgePassesTotal,
		m.FilesDeletedTotal,
		m.FilesSkippedTotal,
	)

	return m
}

// ObservePurge records one retention pass's outcomes.
func (m *Metrics) ObservePurge(results []Result) {
	m.PurgePassesTotal.Inc()
	for _, res := range results {
		if res.Deleted {
			m.FilesDeletedTotal.Inc()
		} else {
			m.FilesSkippedTotal.Inc()
		}
	}
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
