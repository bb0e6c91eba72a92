package commands

import (
	"context"
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// ReconcileVehicleOccupancyCommandHandler repairs vehicle statuses that
// drifted from the shipments referencing them. Usage counters are not
// touched; only the derived status is.
type ReconcileVehicleOccupancyCommandHandler struct {
	uowFactory FleetUoWFactory
	logger     zerolog.Logger
}

func NewReconcileVehicleOccupancyCommandHandler(uowFactory FleetUoWFactory, logger zerolog.Logger) ReconcileVehicleOccupancyCommandHandler {
	return ReconcileVehicleOccupancyCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With().Str("handler", "reconcile_vehicle_occupancy").Logger(),
	}
}

// Handle returns the number of vehicles whose status changed.
func (h ReconcileVehicleOccupancyCommandHandler) Handle(ctx context.Context, command ReconcileVehicleOccupancyCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicles := uow.VehicleRepository()
	shipments := uow.ShipmentRepository()

	all, err := vehicles.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, snapshot := range all {
		v, err := vehicles.GetForUpdate(ctx, snapshot.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}

		active, err := shipments.CountActiveByVehicle(ctx, v.ID())
		if err != nil {
			return 0, err
		}

		before := v.Status()
		v.RefreshOccupancy(active)
		if v.Status() == before {
			continue
		}

		if err = vehicles.Update(ctx, v); err != nil {
			return 0, err
		}
		h.logger.Info().
			Str("plate", v.Plate()).
			Str("from", before.String()).
			Str("to", v.Status().String()).
			Int64("active_shipments", active).
			Msg("vehicle occupancy corrected")
		changed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return changed, nil
}
