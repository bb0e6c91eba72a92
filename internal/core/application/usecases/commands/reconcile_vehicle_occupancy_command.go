package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrReconcileVehicleOccupancyCommandIsNotConstructed = errors.New(
	"ReconcileVehicleOccupancyCommand must be created via NewReconcileVehicleOccupancyCommand constructor",
)

// ReconcileVehicleOccupancyCommand re-derives AVAILABLE/ON_TRIP for every
// vehicle from its active shipments.
type ReconcileVehicleOccupancyCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileVehicleOccupancyCommand() ReconcileVehicleOccupancyCommand {
	return ReconcileVehicleOccupancyCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileVehicleOccupancyCommand) Validate() error {
	return c.guard.Validate(ErrReconcileVehicleOccupancyCommandIsNotConstructed)
}
