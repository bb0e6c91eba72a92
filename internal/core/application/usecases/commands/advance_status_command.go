package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand moves a shipment along its lifecycle. receipt is only
// read for DELIVERED; note overrides the default timeline note.
type AdvanceStatusCommand struct {
	shipmentID kernel.UUID
	target     shipment.Status
	actorID    *kernel.UUID
	note       string
	receipt    *shipment.DeliveryReceipt

	guard guard.ConstructorGuard
}

func NewAdvanceStatusCommand(
	shipmentID kernel.UUID,
	target shipment.Status,
	actorID *kernel.UUID,
	note string,
	receipt *shipment.DeliveryReceipt,
) (AdvanceStatusCommand, error) {
	var idErr, targetErr error
	if err := shipmentID.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	if err := target.Validate(); err != nil {
		targetErr = err
	}
	if err := errors.Join(idErr, targetErr); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return AdvanceStatusCommand{
		shipmentID: shipmentID,
		target:     target,
		actorID:    actorID,
		note:       note,
		receipt:    receipt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

func (c AdvanceStatusCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AdvanceStatusCommand) Target() shipment.Status { return c.target }
func (c AdvanceStatusCommand) ActorID() *kernel.UUID   { return c.actorID }
func (c AdvanceStatusCommand) Note() string            { return c.note }

// Receipt returns the proof of delivery, or an empty one.
func (c AdvanceStatusCommand) Receipt() shipment.DeliveryReceipt {
	if c.receipt == nil {
		return shipment.DeliveryReceipt{}
	}
	return *c.receipt
}
