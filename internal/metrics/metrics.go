// Package metrics exposes journal activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/myrjola/soverain/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "soverain"

// Metrics owns a private registry so that parallel test servers do not collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	savedEntries *prometheus.CounterVec
	computations *prometheus.CounterVec
	rejected     *prometheus.CounterVec
}

// New creates the collectors and registers them together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		savedEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_saved_total",
			Help:      "Number of journal entries saved by entry type.",
		}, []string{"type"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alignments_computed_total",
			Help:      "Number of alignment computations by resulting label.",
		}, []string{"label"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_rejected_total",
			Help:      "Number of submissions rejected by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.savedEntries,
		m.computations,
		m.rejected,
	)
	return m
}

// EntrySaved counts a persisted entry.
func (m *Metrics) EntrySaved(t models.EntryType) {
	m.savedEntries.WithLabelValues(string(t)).Inc()
}

// AlignmentComputed counts a scoring, saved or not.
func (m *Metrics) AlignmentComputed(a models.Alignment) {
	m.computations.WithLabelValues(string(a.Label)).Inc()
}

// Rejected counts a submission that failed validation, e.g., reason "out_of_range".
func (m *Metrics) Rejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
