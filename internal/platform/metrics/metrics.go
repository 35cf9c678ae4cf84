package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the repositories.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Records written for the first time, by kind (FIR, backgroundCheck, viewFIRs)
	RecordsCreated *prometheus.CounterVec

	// Workflow decisions by machine and result ("accepted" or "rejected")
	Transitions *prometheus.CounterVec

	// Version conflicts that forced an update to retry, by kind
	UpdateConflicts *prometheus.CounterVec

	// Full-ledger scan latency by query name
	ScanDuration *prometheus.HistogramVec

	// Audit events dropped because the buffer was full
	AuditDropped prometheus.Counter
}

// New registers all collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid duplicate registration against the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "firledger_records_created_total",
			Help: "Total records created in the ledger by kind",
		}, []string{"kind"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "firledger_status_transitions_total",
			Help: "Status workflow decisions by machine and result",
		}, []string{"machine", "result"}),

		UpdateConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "firledger_update_conflicts_total",
			Help: "Optimistic update retries caused by version conflicts",
		}, []string{"kind"}),

		ScanDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "firledger_scan_duration_seconds",
			Help:    "Duration of filtered full-ledger scans",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"query"}),

		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "firledger_audit_events_dropped_total",
			Help: "Audit events discarded because the publisher buffer was full",
		}),
	}
}

func (m *Metrics) IncrementCreated(kind string) {
	if m != nil {
		m.RecordsCreated.WithLabelValues(kind).Inc()
	}
}

// ObserveTransition records whether a workflow machine accepted a request.
func (m *Metrics) ObserveTransition(machine string, accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.Transitions.WithLabelValues(machine, result).Inc()
}

func (m *Metrics) IncrementConflict(kind string) {
	if m != nil {
		m.UpdateConflicts.WithLabelValues(kind).Inc()
	}
}

// ObserveScan records the duration of one scan.
func (m *Metrics) ObserveScan(query string, d time.Duration) {
	if m != nil {
		m.ScanDuration.WithLabelValues(query).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAuditDropped() {
	if m != nil {
		m.AuditDropped.Inc()
	}
}
