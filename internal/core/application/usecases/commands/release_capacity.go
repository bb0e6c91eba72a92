package commands

import (
	"context"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// releaseCapacity returns the reservation held by s to its vehicle and
// re-derives the vehicle status. It must run inside the transaction that
// holds the shipment lock and before s is persisted, because the stored row
// is excluded from the active count. It reports false when nothing was held.
func releaseCapacity(
	ctx context.Context,
	dispatcher services.ShipmentDispatcher,
	shipments ports.ShipmentRepository,
	vehicles ports.VehicleRepository,
	s *shipment.Shipment,
) (bool, error) {
	vehicleID := s.VehicleID()
	if vehicleID == nil || !s.CapacityHeld() {
		return false, nil
	}

	v, err := vehicles.GetForUpdate(ctx, *vehicleID)
	if err != nil {
		return false, err
	}

	remaining, err := shipments.CountActiveByVehicle(ctx, v.ID(), s.ID())
	if err != nil {
		return false, err
	}

	released, err := dispatcher.Release(s, v, remaining)
	if err != nil {
		return false, err
	}

	if err = vehicles.Update(ctx, v); err != nil {
		return false, err
	}
	return released, nil
}
