package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// ReleaseVehicleCommandHandler returns the capacity of a finished shipment.
// Status changes already release, so this exists for repair and is
// idempotent: a second call reports false and changes nothing.
type ReleaseVehicleCommandHandler struct {
	uowFactory LifecycleUoWFactory
	dispatcher services.ShipmentDispatcher
}

func NewReleaseVehicleCommandHandler(uowFactory LifecycleUoWFactory, dispatcher services.ShipmentDispatcher) ReleaseVehicleCommandHandler {
	return ReleaseVehicleCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle reports whether a reservation was released. Active shipments fail
// with errs.ErrInvalidState.
func (h ReleaseVehicleCommandHandler) Handle(ctx context.Context, command ReleaseVehicleCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()

	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return false, err
	}

	released, err := releaseCapacity(ctx, h.dispatcher, shipments, uow.VehicleRepository(), s)
	if err != nil {
		return false, err
	}
	if !released {
		return false, nil
	}

	if err = shipments.Update(ctx, s); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
