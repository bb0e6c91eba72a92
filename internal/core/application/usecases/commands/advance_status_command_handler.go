package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

var defaultTransitionNotes = map[shipment.Status]string{
	shipment.PickedUp:  "Picked up by driver",
	shipment.InTransit: "In transit",
	shipment.Delivered: "Delivered by driver",
	shipment.Confirmed: "Receipt confirmed",
	shipment.Cancelled: "Shipment cancelled",
}

// AdvanceStatusCommandHandler applies lifecycle transitions other than
// assignment. Entering DELIVERED or CANCELLED releases the vehicle
// reservation in the same transaction.
type AdvanceStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	dispatcher services.ShipmentDispatcher
	notifier   ports.Notifier
	metrics    *metrics.DispatchMetrics
	logger     zerolog.Logger
	clock      func() time.Time
}

func NewAdvanceStatusCommandHandler(
	uowFactory LifecycleUoWFactory,
	dispatcher services.ShipmentDispatcher,
	notifier ports.Notifier,
	dispatchMetrics *metrics.DispatchMetrics,
	logger zerolog.Logger,
) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		notifier:   notifier,
		metrics:    dispatchMetrics,
		logger:     logger.With().Str("handler", "advance_status").Logger(),
		clock:      utcNow,
	}
}

// Handle returns the updated shipment. Disallowed targets fail with
// shipment.ErrInvalidTransition, ASSIGNED with errs.ErrInvalidState.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, command AdvanceStatusCommand) (*shipment.Shipment, error) {
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

	shipments := uow.ShipmentRepository()

	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	var event shipment.TransitionEvent
	if command.Target() == shipment.Delivered {
		event, err = s.Deliver(command.Receipt(), now)
	} else {
		event, err = s.Transition(command.Target(), now)
	}
	if err != nil {
		return nil, err
	}

	if !s.Status().IsActive() {
		if _, err = releaseCapacity(ctx, h.dispatcher, shipments, uow.VehicleRepository(), s); err != nil {
			return nil, err
		}
	}

	if err = shipments.Update(ctx, s); err != nil {
		return nil, err
	}

	note := command.Note()
	if note == "" {
		note = defaultTransitionNotes[event.To]
	}
	if err = uow.TimelineRepository().Append(ctx, timeline.FromEvent(event, command.ActorID(), note)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.ObserveTransition(event.To.String())
	h.logger.Info().
		Str("tracking_number", s.TrackingNumber()).
		Str("from", event.From.String()).
		Str("to", event.To.String()).
		Str("actor_id", actorString(command.ActorID())).
		Msg("shipment status changed")
	h.notifyAfter(ctx, s, event)

	return s, nil
}

func (h AdvanceStatusCommandHandler) notifyAfter(ctx context.Context, s *shipment.Shipment, event shipment.TransitionEvent) {
	if h.notifier == nil {
		return
	}

	switch event.To {
	case shipment.Delivered:
		h.notifier.Notify(ctx, ports.Notification{
			UserID:  s.SenderID(),
			Kind:    ports.NotificationAlert,
			Title:   "Shipment Delivered",
			Message: fmt.Sprintf("Shipment %s has been delivered", s.TrackingNumber()),
			At:      event.At,
		})
	case shipment.Cancelled:
		if driverID := s.DriverID(); driverID != nil {
			h.notifier.Notify(ctx, ports.Notification{
				UserID:  *driverID,
				Kind:    ports.NotificationAlert,
				Title:   "Shipment Cancelled",
				Message: fmt.Sprintf("Shipment %s was cancelled", s.TrackingNumber()),
				At:      event.At,
			})
		}
	}
}
