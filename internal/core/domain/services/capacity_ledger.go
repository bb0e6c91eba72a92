package services

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/rs/zerolog"
)

// AnomalyObserver is notified whenever a release had to be clamped.
type AnomalyObserver interface {
	IncLedgerAnomaly()
}

// CapacityLedger is the single entry point for vehicle usage changes.
// Callers must hold exclusive access to the vehicle (row lock) while
// calling Reserve or Release.
type CapacityLedger struct {
	logger   zerolog.Logger
	observer AnomalyObserver
}

// NewCapacityLedger accepts a nil observer.
func NewCapacityLedger(logger zerolog.Logger, observer AnomalyObserver) CapacityLedger {
	return CapacityLedger{
		logger:   logger.With().Str("component", "capacity_ledger").Logger(),
		observer: observer,
	}
}

// IsAvailable is the non-mutating check used while searching candidates.
func (l CapacityLedger) IsAvailable(v *vehicle.Vehicle, load kernel.Load) bool {
	return v.CanCarry(load)
}

// Reserve increments usage or returns *vehicle.CapacityExceededError.
func (l CapacityLedger) Reserve(v *vehicle.Vehicle, load kernel.Load) error {
	return v.Reserve(load)
}

// Release decrements usage, flooring at zero. Hitting the floor means a
// double release or a corrupted counter, so it is logged as an anomaly.
func (l CapacityLedger) Release(v *vehicle.Vehicle, load kernel.Load) {
	before := v.Used()
	l.reportClamp(v, before, load, v.Release(load))
}

// Cancel rolls back a Reserve whose assignment did not happen, including the
// status change Reserve made.
func (l CapacityLedger) Cancel(v *vehicle.Vehicle, load kernel.Load, previous vehicle.Status) {
	before := v.Used()
	l.reportClamp(v, before, load, v.CancelReservation(load, previous))
}

func (l CapacityLedger) reportClamp(v *vehicle.Vehicle, before, load kernel.Load, clamped bool) {
	if !clamped {
		return
	}

	l.logger.Warn().
		Str("vehicle_id", v.ID().String()).
		Str("plate", v.Plate()).
		Str("used_before", before.String()).
		Str("released", load.String()).
		Msg("capacity release clamped at zero")
	if l.observer != nil {
		l.observer.IncLedgerAnomaly()
	}
}
