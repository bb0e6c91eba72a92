package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrSetZoneStatusCommandIsNotConstructed = errors.New(
	"SetZoneStatusCommand must be created via NewSetZoneStatusCommand constructor",
)

// SetZoneStatusCommand opens or closes a zone for matching.
type SetZoneStatusCommand struct {
	zoneID  kernel.UUID
	status  zone.Status
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetZoneStatusCommand(zoneID kernel.UUID, status zone.Status, actorID *kernel.UUID) (SetZoneStatusCommand, error) {
	var idErr, statusErr error
	if err := zoneID.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("zone_id", err)
	}
	if status != zone.Active && status != zone.Inactive {
		statusErr = errs.NewValueIsInvalidError("zone_status")
	}
	if err := errors.Join(idErr, statusErr); err != nil {
		return SetZoneStatusCommand{}, err
	}

	return SetZoneStatusCommand{
		zoneID:  zoneID,
		status:  status,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetZoneStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetZoneStatusCommandIsNotConstructed)
}

func (c SetZoneStatusCommand) ZoneID() kernel.UUID   { return c.zoneID }
func (c SetZoneStatusCommand) Status() zone.Status   { return c.status }
func (c SetZoneStatusCommand) ActorID() *kernel.UUID { return c.actorID }
