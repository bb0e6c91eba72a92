// Package ports declares what the dispatch engine needs from the outside world:
// transactional repositories, a notifier and an alert recorder.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipment aggregates.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update writes the aggregate if its stored version still matches
	// aggregate.Version(), otherwise returns *errs.ConcurrentModificationError.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate loads the shipment and holds an exclusive row lock until
	// the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// ListPending returns up to limit PENDING shipments, oldest first.
	ListPending(ctx context.Context, limit int) ([]*shipment.Shipment, error)

	// CountActiveByVehicle counts ASSIGNED, PICKED_UP and IN_TRANSIT shipments
	// on a vehicle, ignoring the excluded shipment ids.
	CountActiveByVehicle(ctx context.Context, vehicleID kernel.UUID, excluding ...kernel.UUID) (int64, error)

	// CountActiveByDriver counts ASSIGNED, PICKED_UP and IN_TRANSIT shipments of a driver.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error)
}
