package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

// DispatchShipmentCommandHandler assigns a vehicle and a driver to a pending
// shipment inside one transaction.
//
// The shipment row is locked first, then each candidate vehicle in ranking
// order until one still fits after locking. Driver activity is read without a
// lock. Notifications and alerts are emitted after the transaction ends.
//
// Example:
//
//	cmd, _ := NewDispatchShipmentCommand(shipmentID, nil, nil, &actorID)
//	assigned, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoCapacityAvailable):
//	    // alert recorded, actor notified
//	case errors.Is(err, services.ErrNoDriverAvailable):
//	    // alert recorded, actor notified
//	case err != nil:
//	    return err
//	}
//	log.Printf("%s on %s", assigned.TrackingNumber, assigned.Plate)
type DispatchShipmentCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.ShipmentDispatcher
	reporter   outcomeReporter
	clock      func() time.Time
}

func NewDispatchShipmentCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.ShipmentDispatcher,
	notifier ports.Notifier,
	alerts ports.AlertRecorder,
	dispatchMetrics *metrics.DispatchMetrics,
	logger zerolog.Logger,
) DispatchShipmentCommandHandler {
	return DispatchShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		reporter: outcomeReporter{
			notifier: notifier,
			alerts:   alerts,
			metrics:  dispatchMetrics,
			logger:   logger.With().Str("handler", "dispatch_shipment").Logger(),
		},
		clock: utcNow,
	}
}

// Handle returns the assignment, or one of services.ErrNoCapacityAvailable,
// services.ErrNoDriverAvailable, *vehicle.CapacityExceededError (vehicle
// override too small), errs.ErrObjectNotFound or errs.ErrInvalidState.
func (h DispatchShipmentCommandHandler) Handle(ctx context.Context, command DispatchShipmentCommand) (AssignedShipment, error) {
	if err := command.Validate(); err != nil {
		return AssignedShipment{}, err
	}

	assigned, s, err := h.dispatch(ctx, command)
	if err != nil {
		h.reporter.rejected(ctx, dispatchModeAuto, command.ActorID(), s, err)
		return AssignedShipment{}, err
	}

	h.reporter.assigned(ctx, dispatchModeAuto, command.ActorID(), assigned)
	return assigned, nil
}

func (h DispatchShipmentCommandHandler) dispatch(ctx context.Context, command DispatchShipmentCommand) (AssignedShipment, *shipment.Shipment, error) {
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
			"only pending shipments can be dispatched")
	}

	zones, err := uow.ZoneRepository().ListActive(ctx)
	if err != nil {
		return AssignedShipment{}, s, err
	}
	zoneID := h.dispatcher.Matcher().MatchPickup(s, zones)

	var v *vehicle.Vehicle
	if vehicleID := command.VehicleID(); vehicleID != nil {
		v, err = lockVehicleFor(ctx, vehicles, h.dispatcher.Ledger(), *vehicleID, s.Load())
	} else {
		v, err = h.lockFirstFit(ctx, vehicles, s.Load(), zoneID)
	}
	if err != nil {
		return AssignedShipment{}, s, err
	}

	driverID, err := h.resolveDriver(ctx, uow, v, command.DriverID())
	if err != nil {
		return AssignedShipment{}, s, err
	}

	now := h.clock()
	event, err := h.dispatcher.Commit(s, v, driverID, zoneID, now)
	if err != nil {
		return AssignedShipment{}, s, err
	}

	if err = vehicles.Update(ctx, v); err != nil {
		return AssignedShipment{}, s, err
	}
	if err = shipments.Update(ctx, s); err != nil {
		return AssignedShipment{}, s, err
	}

	entry := timeline.FromEvent(event, command.ActorID(), fmt.Sprintf("Assigned to vehicle %s", v.Plate()))
	if err = uow.TimelineRepository().Append(ctx, entry); err != nil {
		return AssignedShipment{}, s, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignedShipment{}, s, err
	}

	return newAssignedShipment(s, v, driverID, now), s, nil
}

// lockFirstFit ranks the unlocked snapshot and then locks candidates one by
// one; the first that is still dispatchable with enough headroom wins.
func (h DispatchShipmentCommandHandler) lockFirstFit(
	ctx context.Context,
	vehicles ports.VehicleRepository,
	load kernel.Load,
	zoneID *kernel.UUID,
) (*vehicle.Vehicle, error) {
	available, err := vehicles.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range h.dispatcher.RankVehicles(load, zoneID, available) {
		locked, err := vehicles.GetForUpdate(ctx, candidate.ID())
		if err != nil {
			return nil, err
		}
		if locked.IsDispatchable() && h.dispatcher.Ledger().IsAvailable(locked, load) {
			return locked, nil
		}
	}
	return nil, services.ErrNoCapacityAvailable
}

func (h DispatchShipmentCommandHandler) resolveDriver(
	ctx context.Context,
	uow UoW,
	v *vehicle.Vehicle,
	override *kernel.UUID,
) (kernel.UUID, error) {
	if override != nil {
		return loadDriver(ctx, uow.UserRepository(), *override)
	}

	var drivers []*user.User
	if v.DefaultDriverID() == nil {
		var err error
		if drivers, err = uow.UserRepository().ListByRole(ctx, user.Driver); err != nil {
			return kernel.UUID{}, err
		}
	}

	shipments := uow.ShipmentRepository()
	return h.dispatcher.SelectDriver(v, drivers, func(driverID kernel.UUID) (bool, error) {
		active, err := shipments.CountActiveByDriver(ctx, driverID)
		return active > 0, err
	})
}

// lockVehicleFor locks an explicitly chosen vehicle and checks it can take load.
func lockVehicleFor(
	ctx context.Context,
	vehicles ports.VehicleRepository,
	ledger services.CapacityLedger,
	vehicleID kernel.UUID,
	load kernel.Load,
) (*vehicle.Vehicle, error) {
	v, err := vehicles.GetForUpdate(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !ledger.IsAvailable(v, load) {
		return nil, &vehicle.CapacityExceededError{VehicleID: v.ID(), Requested: load, Remaining: v.Remaining()}
	}
	return v, nil
}

// loadDriver returns the id of an active DRIVER user.
func loadDriver(ctx context.Context, users ports.UserRepository, driverID kernel.UUID) (kernel.UUID, error) {
	u, err := users.Get(ctx, driverID)
	if err != nil {
		return kernel.UUID{}, err
	}
	if !u.IsDriver() {
		return kernel.UUID{}, errs.NewObjectNotFoundError("driver", driverID.String())
	}
	return u.ID(), nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
