package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrManualAssignCommandIsNotConstructed = errors.New(
	"ManualAssignCommand must be created via NewManualAssignCommand constructor",
)

// ManualAssignCommand assigns an explicit vehicle and driver, skipping zone
// resolution and candidate search.
type ManualAssignCommand struct {
	shipmentID kernel.UUID
	vehicleID  kernel.UUID
	driverID   kernel.UUID
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewManualAssignCommand(shipmentID, vehicleID, driverID kernel.UUID, actorID *kernel.UUID) (ManualAssignCommand, error) {
	var shipmentErr, vehicleErr, driverErr error
	if err := shipmentID.Validate(); err != nil {
		shipmentErr = errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	if err := vehicleID.Validate(); err != nil {
		vehicleErr = errs.NewValueIsInvalidErrorWithCause("vehicle_id", err)
	}
	if err := driverID.Validate(); err != nil {
		driverErr = errs.NewValueIsInvalidErrorWithCause("driver_id", err)
	}
	if err := errors.Join(shipmentErr, vehicleErr, driverErr); err != nil {
		return ManualAssignCommand{}, err
	}

	return ManualAssignCommand{
		shipmentID: shipmentID,
		vehicleID:  vehicleID,
		driverID:   driverID,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ManualAssignCommand) Validate() error {
	return c.guard.Validate(ErrManualAssignCommandIsNotConstructed)
}

func (c ManualAssignCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c ManualAssignCommand) VehicleID() kernel.UUID  { return c.vehicleID }
func (c ManualAssignCommand) DriverID() kernel.UUID   { return c.driverID }
func (c ManualAssignCommand) ActorID() *kernel.UUID   { return c.actorID }
