package commands

import (
	"context"

	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// SetVehicleStatusCommandHandler applies operator fleet edits. Bringing a
// vehicle back to AVAILABLE re-derives ON_TRIP from its active shipments, so
// a vehicle parked mid-trip does not become dispatchable while loaded.
type SetVehicleStatusCommandHandler struct {
	uowFactory UoWFactory
	logger     zerolog.Logger
}

func NewSetVehicleStatusCommandHandler(uowFactory UoWFactory, logger zerolog.Logger) SetVehicleStatusCommandHandler {
	return SetVehicleStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With().Str("handler", "set_vehicle_status").Logger(),
	}
}

func (h SetVehicleStatusCommandHandler) Handle(ctx context.Context, command SetVehicleStatusCommand) (*vehicle.Vehicle, error) {
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

	vehicles := uow.VehicleRepository()
	v, err := vehicles.GetForUpdate(ctx, command.VehicleID())
	if err != nil {
		return nil, err
	}
	before := v.Status()

	if status := command.Status(); status != nil {
		if err = v.SetManualStatus(*status); err != nil {
			return nil, err
		}
		if *status == vehicle.Available {
			active, err := uow.ShipmentRepository().CountActiveByVehicle(ctx, v.ID())
			if err != nil {
				return nil, err
			}
			v.RefreshOccupancy(active)
		}
	}

	if change := command.Zone(); change.Set {
		if change.ID != nil {
			z, err := uow.ZoneRepository().Get(ctx, *change.ID)
			if err != nil {
				return nil, err
			}
			if z.Status() != zone.Active {
				return nil, errs.NewInvalidStateError("zone", z.Name(), z.Status().String(),
					"vehicles can only be homed in active zones")
			}
		}
		v.AssignZone(change.ID)
	}

	if change := command.DefaultDriver(); change.Set {
		if change.ID != nil {
			if _, err = loadDriver(ctx, uow.UserRepository(), *change.ID); err != nil {
				return nil, err
			}
		}
		v.AssignDefaultDriver(change.ID)
	}

	if err = vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info().
		Str("plate", v.Plate()).
		Str("from", before.String()).
		Str("to", v.Status().String()).
		Str("actor_id", actorString(command.ActorID())).
		Msg("vehicle updated")
	return v, nil
}
