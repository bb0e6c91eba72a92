package commands

import (
	"context"

	"logistics/internal/core/domain/model/zone"

	"github.com/rs/zerolog"
)

// SetZoneStatusCommandHandler activates or deactivates a zone. Inactive
// zones drop out of matching; vehicles homed there keep their zone id and
// are simply dispatched as out-of-zone candidates.
type SetZoneStatusCommandHandler struct {
	uowFactory ZoneUoWFactory
	logger     zerolog.Logger
}

func NewSetZoneStatusCommandHandler(uowFactory ZoneUoWFactory, logger zerolog.Logger) SetZoneStatusCommandHandler {
	return SetZoneStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With().Str("handler", "set_zone_status").Logger(),
	}
}

func (h SetZoneStatusCommandHandler) Handle(ctx context.Context, command SetZoneStatusCommand) (*zone.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zones := uow.ZoneRepository()
	z, err := zones.Get(ctx, command.ZoneID())
	if err != nil {
		return nil, err
	}

	before := z.Status()
	if command.Status() == zone.Active {
		z.Activate()
	} else {
		z.Deactivate()
	}
	if z.Status() == before {
		return z, nil
	}

	if err = zones.Update(ctx, z); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info().
		Str("zone", z.Name()).
		Str("from", before.String()).
		Str("to", z.Status().String()).
		Str("actor_id", actorString(command.ActorID())).
		Msg("zone status changed")
	return z, nil
}
