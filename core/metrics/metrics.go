package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "store_inventory"

// Metrics groups the engine counters.
type Metrics struct {
	registry      *prometheus.Registry
	submitted     prometheus.Counter
	decisions     *prometheus.CounterVec
	refusals      *prometheus.CounterVec
	ledgerEntries *prometheus.CounterVec
}

// New creates the counters and registers them, plus the Go runtime collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_submitted_total",
			Help:      "Withdrawal requests accepted as pending.",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Requests decided, by outcome.",
		}, []string{"outcome"}),
		refusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refusals_total",
			Help:      "Engine operations refused, by operation and error kind.",
		}, []string{"operation", "kind"}),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_entries_total",
			Help:      "Ledger entries appended, by direction.",
		}, []string{"direction"}),
	}

	m.registry.MustRegister(
		m.submitted,
		m.decisions,
		m.refusals,
		m.ledgerEntries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the counters live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestSubmitted counts one accepted submission.
func (m *Metrics) RequestSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

// Decision counts one decided request.
func (m *Metrics) Decision(outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(outcome).Inc()
}

// Refusal counts one refused operation.
func (m *Metrics) Refusal(operation, kind string) {
	if m == nil {
		return
	}
	m.refusals.WithLabelValues(operation, kind).Inc()
}

// LedgerEntry counts one appended ledger entry.
func (m *Metrics) LedgerEntry(direction string) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(direction).Inc()
}
