package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

// ManualAssignCommandHandler is the operator override of dispatch. The
// shipment keeps whatever zone it already had; the vehicle only needs
// headroom, not AVAILABLE status.
type ManualAssignCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.ShipmentDispatcher
	reporter   outcomeReporter
	clock      func() time.Time
}

func NewManualAssignCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.ShipmentDispatcher,
	notifier ports.Notifier,
	dispatchMetrics *metrics.DispatchMetrics,
	logger zerolog.Logger,
) ManualAssignCommandHandler {
	return ManualAssignCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		reporter: outcomeReporter{
			notifier: notifier,
			metrics:  dispatchMetrics,
			logger:   logger.With().Str("handler", "manual_assign").Logger(),
		},
		clock: utcNow,
	}
}

func (h ManualAssignCommandHandler) Handle(ctx context.Context, command ManualAssignCommand) (AssignedShipment, error) {
	if err := command.Validate(); err != nil {
		return AssignedShipment{}, err
	}

	assigned, s, err := h.assign(ctx, command)
	if err != nil {
		h.reporter.rejected(ctx, dispatchModeManual, command.ActorID(), s, err)
		return AssignedShipment{}, err
	}

	h.reporter.assigned(ctx, dispatchModeManual, command.ActorID(), assigned)
	return assigned, nil
}

func (h ManualAssignCommandHandler) assign(ctx context.Context, command ManualAssignCommand) (AssignedShipment, *shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignedShipment{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()
	vehicles := uow.VehicleRepository()

	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return AssignedShipment{}, nil, err
	}
	if s.Status() != shipment.Pending {
		return AssignedShipment{}, s, errs.NewInvalidStateError("shipment", s.TrackingNumber(), s.Status().String(),
			"only pending shipments can be assigned")
	}

	v, err := lockVehicleFor(ctx, vehicles, h.dispatcher.Ledger(), command.VehicleID(), s.Load())
	if err != nil {
		return AssignedShipment{}, s, err
	}

	driverID, err := loadDriver(ctx, uow.UserRepository(), command.DriverID())
	if err != nil {
		return AssignedShipment{}, s, err
	}

	now := h.clock()
	event, err := h.dispatcher.Commit(s, v, driverID, s.ZoneID(), now)
	if err != nil {
		return AssignedShipment{}, s, err
	}

	if err = vehicles.Update(ctx, v); err != nil {
		return AssignedShipment{}, s, err
	}
	if err = shipments.Update(ctx, s); err != nil {
		return AssignedShipment{}, s, err
	}

	entry := timeline.FromEvent(event, command.ActorID(), fmt.Sprintf("Manually assigned to vehicle %s", v.Plate()))
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return AssignedShipment{}, s, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignedShipment{}, s, err
	}

	return newAssignedShipment(s, v, driverID, now), s, nil
}
