// Package metrics wraps the Prometheus collectors of the engine. All methods
// are safe on a nil receiver so handlers can run without a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes.
const (
	OutcomeAssigned         = "assigned"
	OutcomeNoCapacity       = "no_capacity"
	OutcomeNoDriver         = "no_driver"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeRejected         = "rejected"
	OutcomeError            = "error"
)

// DispatchMetrics counts dispatch decisions, status transitions and ledger anomalies.
type DispatchMetrics struct {
	dispatches  *prometheus.CounterVec
	transitions *prometheus.CounterVec
	anomalies   prometheus.Counter
}

// NewDispatchMetrics registers the collectors on reg; a nil reg yields a no-op instance.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return &DispatchMetrics{}
	}
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_attempts_total",
		Help: "Dispatch and manual assignment attempts by mode and outcome.",
	}, []string{"mode", "outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipment_transitions_total",
		Help: "Accepted shipment status transitions by target status.",
	}, []string{"status"})
	anomalies := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "capacity_ledger_anomalies_total",
		Help: "Capacity releases that had to be clamped at zero.",
	})
	reg.MustRegister(dispatches, transitions, anomalies)
	return &DispatchMetrics{
		dispatches:  dispatches,
		transitions: transitions,
		anomalies:   anomalies,
	}
}

// ObserveDispatch counts one attempt; mode is "auto" or "manual".
func (m *DispatchMetrics) ObserveDispatch(mode, outcome string) {
	if m == nil || m.dispatches == nil {
		return
	}
	m.dispatches.WithLabelValues(mode, outcome).Inc()
}

func (m *DispatchMetrics) ObserveTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

// IncLedgerAnomaly satisfies services.AnomalyObserver.
func (m *DispatchMetrics) IncLedgerAnomaly() {
	if m == nil || m.anomalies == nil {
		return
	}
	m.anomalies.Inc()
}
