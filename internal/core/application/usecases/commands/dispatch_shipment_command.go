package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrDispatchShipmentCommandIsNotConstructed = errors.New(
	"DispatchShipmentCommand must be created via NewDispatchShipmentCommand constructor",
)

// DispatchShipmentCommand assigns a vehicle and driver to a PENDING shipment.
// vehicleID and driverID are optional overrides; when absent the handler
// searches for them.
type DispatchShipmentCommand struct {
	shipmentID kernel.UUID
	vehicleID  *kernel.UUID
	driverID   *kernel.UUID
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchShipmentCommand(shipmentID kernel.UUID, vehicleID, driverID, actorID *kernel.UUID) (DispatchShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return DispatchShipmentCommand{}, errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	return DispatchShipmentCommand{
		shipmentID: shipmentID,
		vehicleID:  vehicleID,
		driverID:   driverID,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDispatchShipmentCommandIsNotConstructed)
}

func (c DispatchShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c DispatchShipmentCommand) VehicleID() *kernel.UUID { return c.vehicleID }
func (c DispatchShipmentCommand) DriverID() *kernel.UUID  { return c.driverID }
func (c DispatchShipmentCommand) ActorID() *kernel.UUID   { return c.actorID }
