package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrReleaseVehicleCommandIsNotConstructed = errors.New(
	"ReleaseVehicleCommand must be created via NewReleaseVehicleCommand constructor",
)

type ReleaseVehicleCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseVehicleCommand(shipmentID kernel.UUID) (ReleaseVehicleCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ReleaseVehicleCommand{}, errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	return ReleaseVehicleCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseVehicleCommand) Validate() error {
	return c.guard.Validate(ErrReleaseVehicleCommandIsNotConstructed)
}

func (c ReleaseVehicleCommand) ShipmentID() kernel.UUID { return c.shipmentID }
