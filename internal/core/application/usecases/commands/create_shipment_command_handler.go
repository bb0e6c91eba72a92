package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
)

type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      func() time.Time
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      utcNow,
	}
}

// Handle stores the shipment together with its first timeline entry.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	s, err := shipment.NewShipment(
		command.ShipmentID(),
		command.SenderID(),
		command.Pickup(),
		command.Drop(),
		command.Load(),
		command.Description(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	created := shipment.TransitionEvent{ShipmentID: s.ID(), From: shipment.Unknown, To: shipment.Pending, At: now}
	sender := s.SenderID()
	if err = uow.TimelineRepository().Append(ctx, timeline.FromEvent(created, &sender, "Shipment created")); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
