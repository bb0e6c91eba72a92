package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
)

// VehicleRepository persists vehicles. Capacity changes must go through
// GetForUpdate followed by Update inside one transaction.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// ListAvailable returns AVAILABLE vehicles in a stable order (registration time, then id).
	ListAvailable(ctx context.Context) ([]*vehicle.Vehicle, error)

	// ListAll returns every vehicle in the same stable order.
	ListAll(ctx context.Context) ([]*vehicle.Vehicle, error)
}
