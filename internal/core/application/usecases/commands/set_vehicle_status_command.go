package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrSetVehicleStatusCommandIsNotConstructed = errors.New(
	"SetVehicleStatusCommand must be created via NewSetVehicleStatusCommand constructor",
)

// ReferenceChange is an optional update of a nullable reference. Set false
// leaves the field alone; Set with a nil ID clears it.
type ReferenceChange struct {
	Set bool
	ID  *kernel.UUID
}

// Keep is the ReferenceChange that leaves the field untouched.
var Keep = ReferenceChange{}

// SetTo returns a change that points the reference at id.
func SetTo(id kernel.UUID) ReferenceChange {
	return ReferenceChange{Set: true, ID: &id}
}

// Clear returns a change that removes the reference.
func Clear() ReferenceChange {
	return ReferenceChange{Set: true}
}

// SetVehicleStatusCommand is the operator's fleet edit: park or release a
// vehicle and move its home zone or default driver.
type SetVehicleStatusCommand struct {
	vehicleID     kernel.UUID
	status        *vehicle.Status
	zone          ReferenceChange
	defaultDriver ReferenceChange
	actorID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetVehicleStatusCommand validates an operator edit of a vehicle.
//
// Parameters:
//   - vehicleID: the vehicle to edit
//   - status: MAINTENANCE, INACTIVE or AVAILABLE; nil keeps the current status.
//     ON_TRIP is derived from shipments and cannot be set.
//   - zone, defaultDriver: reference changes, Keep for no change
//   - actorID: the operator, used for logging only
//
// Returns:
//   - SetVehicleStatusCommand: the command
//   - error: ErrValueIsInvalid for bad ids or statuses, ErrValueIsRequired
//     when nothing would change
//
// Example:
//
//	cmd, err := NewSetVehicleStatusCommand(id, &maintenance, Keep, Clear(), &operatorID)
func NewSetVehicleStatusCommand(
	vehicleID kernel.UUID,
	status *vehicle.Status,
	zone ReferenceChange,
	defaultDriver ReferenceChange,
	actorID *kernel.UUID,
) (SetVehicleStatusCommand, error) {
	var idErr, statusErr, zoneErr, driverErr error
	if err := vehicleID.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("vehicle_id", err)
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			statusErr = err
		} else if *status == vehicle.OnTrip {
			statusErr = errs.NewValueIsInvalidError("ON_TRIP is derived from active shipments")
		}
	}
	if zone.ID != nil {
		if err := zone.ID.Validate(); err != nil {
			zoneErr = errs.NewValueIsInvalidErrorWithCause("zone_id", err)
		}
	}
	if defaultDriver.ID != nil {
		if err := defaultDriver.ID.Validate(); err != nil {
			driverErr = errs.NewValueIsInvalidErrorWithCause("default_driver_id", err)
		}
	}
	if err := errors.Join(idErr, statusErr, zoneErr, driverErr); err != nil {
		return SetVehicleStatusCommand{}, err
	}
	if status == nil && !zone.Set && !defaultDriver.Set {
		return SetVehicleStatusCommand{}, errs.NewValueIsRequiredError("status, zone_id or default_driver_id")
	}

	return SetVehicleStatusCommand{
		vehicleID:     vehicleID,
		status:        status,
		zone:          zone,
		defaultDriver: defaultDriver,
		actorID:       actorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c SetVehicleStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetVehicleStatusCommandIsNotConstructed)
}

func (c SetVehicleStatusCommand) VehicleID() kernel.UUID         { return c.vehicleID }
func (c SetVehicleStatusCommand) Status() *vehicle.Status        { return c.status }
func (c SetVehicleStatusCommand) Zone() ReferenceChange          { return c.zone }
func (c SetVehicleStatusCommand) DefaultDriver() ReferenceChange { return c.defaultDriver }
func (c SetVehicleStatusCommand) ActorID() *kernel.UUID          { return c.actorID }
