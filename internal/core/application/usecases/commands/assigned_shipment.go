package commands

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
)

// AssignedShipment is the result of a successful dispatch or manual assignment.
type AssignedShipment struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	Status         shipment.Status
	VehicleID      kernel.UUID
	Plate          string
	DriverID       kernel.UUID
	ZoneID         *kernel.UUID
	AssignedAt     time.Time
	// Remaining is the vehicle headroom after the reservation.
	Remaining kernel.Load
}

func newAssignedShipment(s *shipment.Shipment, v *vehicle.Vehicle, driverID kernel.UUID, at time.Time) AssignedShipment {
	return AssignedShipment{
		ShipmentID:     s.ID(),
		TrackingNumber: s.TrackingNumber(),
		Status:         s.Status(),
		VehicleID:      v.ID(),
		Plate:          v.Plate(),
		DriverID:       driverID,
		ZoneID:         s.ZoneID(),
		AssignedAt:     at,
		Remaining:      v.Remaining(),
	}
}
