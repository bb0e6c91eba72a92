package services

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

var (
	// ErrNoCapacityAvailable means no AVAILABLE vehicle can take the load, in zone or out.
	ErrNoCapacityAvailable = errors.New("no vehicle with sufficient capacity available")

	// ErrNoDriverAvailable means every DRIVER already has an active shipment.
	ErrNoDriverAvailable = errors.New("no available driver found")
)

// DriverActivity reports whether a driver currently has an active shipment.
type DriverActivity func(driverID kernel.UUID) (busy bool, err error)

// ShipmentDispatcher implements the selection rules of dispatch.
//
// Vehicle search is first-fit in supply order, not capacity-optimal:
// in-zone vehicles first, then every AVAILABLE vehicle.
// Driver search prefers the vehicle's default driver, then the first idle DRIVER.
type ShipmentDispatcher struct {
	ledger  CapacityLedger
	matcher ZoneMatcher
}

// NewShipmentDispatcher wires the ledger used by Commit and Release.
func NewShipmentDispatcher(ledger CapacityLedger) ShipmentDispatcher {
	return ShipmentDispatcher{ledger: ledger, matcher: NewZoneMatcher()}
}

// Ledger exposes the ledger so callers release through the same anomaly reporting.
func (d ShipmentDispatcher) Ledger() CapacityLedger {
	return d.ledger
}

// Matcher exposes the zone matcher.
func (d ShipmentDispatcher) Matcher() ZoneMatcher {
	return d.matcher
}

// RankVehicles returns the dispatchable vehicles that can carry load, in-zone
// ones first, each group keeping supply order. The caller locks candidates in
// this order and takes the first that still fits.
func (d ShipmentDispatcher) RankVehicles(load kernel.Load, zoneID *kernel.UUID, vehicles []*vehicle.Vehicle) []*vehicle.Vehicle {
	inZone := make([]*vehicle.Vehicle, 0, len(vehicles))
	rest := make([]*vehicle.Vehicle, 0, len(vehicles))

	for _, v := range vehicles {
		if v == nil || !v.IsDispatchable() || !d.ledger.IsAvailable(v, load) {
			continue
		}
		if zoneID != nil && kernel.EqualPtr(v.ZoneID(), zoneID) {
			inZone = append(inZone, v)
			continue
		}
		rest = append(rest, v)
	}

	return append(inZone, rest...)
}

// SelectVehicle is RankVehicles without locking: first candidate or ErrNoCapacityAvailable.
func (d ShipmentDispatcher) SelectVehicle(load kernel.Load, zoneID *kernel.UUID, vehicles []*vehicle.Vehicle) (*vehicle.Vehicle, error) {
	ranked := d.RankVehicles(load, zoneID, vehicles)
	if len(ranked) == 0 {
		return nil, ErrNoCapacityAvailable
	}
	return ranked[0], nil
}

// SelectDriver picks the vehicle's default driver without an activity check,
// otherwise the first DRIVER in drivers for which busy reports false.
func (d ShipmentDispatcher) SelectDriver(v *vehicle.Vehicle, drivers []*user.User, busy DriverActivity) (kernel.UUID, error) {
	if id := v.DefaultDriverID(); id != nil {
		return *id, nil
	}

	for _, candidate := range drivers {
		if candidate == nil || !candidate.IsDriver() {
			continue
		}
		isBusy, err := busy(candidate.ID())
		if err != nil {
			return kernel.UUID{}, err
		}
		if !isBusy {
			return candidate.ID(), nil
		}
	}
	return kernel.UUID{}, ErrNoDriverAvailable
}

// Commit reserves capacity on v and assigns s to it. Preconditions are
// checked before the reservation, and a failed assignment cancels it, so on
// error neither aggregate has changed.
func (d ShipmentDispatcher) Commit(
	s *shipment.Shipment,
	v *vehicle.Vehicle,
	driverID kernel.UUID,
	zoneID *kernel.UUID,
	now time.Time,
) (shipment.TransitionEvent, error) {
	if s.Status() != shipment.Pending {
		return shipment.TransitionEvent{}, errs.NewInvalidStateError("shipment", s.TrackingNumber(), s.Status().String(),
			"only pending shipments can be dispatched")
	}
	if err := errors.Join(v.ID().Validate(), driverID.Validate()); err != nil {
		return shipment.TransitionEvent{}, errs.NewValueIsInvalidErrorWithCause("assignment", err)
	}

	previous := v.Status()
	if err := d.ledger.Reserve(v, s.Load()); err != nil {
		return shipment.TransitionEvent{}, err
	}

	event, err := s.Assign(v.ID(), driverID, zoneID, now)
	if err != nil {
		d.ledger.Cancel(v, s.Load(), previous)
		return shipment.TransitionEvent{}, err
	}
	return event, nil
}

// Release returns the shipment's reservation to v (at most once per
// shipment) and re-derives v's status from its remaining active shipments.
func (d ShipmentDispatcher) Release(s *shipment.Shipment, v *vehicle.Vehicle, remainingActive int64) (bool, error) {
	if vid := s.VehicleID(); vid == nil || !vid.IsEqual(v.ID()) {
		return false, errs.NewValueIsInvalidError("vehicle does not carry this shipment")
	}

	released, err := s.ReleaseReservation()
	if err != nil {
		return false, err
	}
	if released {
		d.ledger.Release(v, s.Load())
	}
	v.RefreshOccupancy(remainingActive)
	return released, nil
}
