package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand books a new PENDING shipment for a sender.
type CreateShipmentCommand struct {
	shipmentID  kernel.UUID
	senderID    kernel.UUID
	pickup      shipment.Endpoint
	drop        shipment.Endpoint
	load        kernel.Load
	description string

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	senderID kernel.UUID,
	pickup, drop shipment.Endpoint,
	load kernel.Load,
	description string,
) (CreateShipmentCommand, error) {
	var shipmentErr, senderErr, pickupErr, dropErr error
	if err := shipmentID.Validate(); err != nil {
		shipmentErr = errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	if err := senderID.Validate(); err != nil {
		senderErr = errs.NewValueIsInvalidErrorWithCause("sender_id", err)
	}
	if strings.TrimSpace(pickup.Address()) == "" {
		pickupErr = errs.NewValueIsRequiredError("pickup")
	}
	if strings.TrimSpace(drop.Address()) == "" {
		dropErr = errs.NewValueIsRequiredError("drop")
	}
	if err := errors.Join(shipmentErr, senderErr, pickupErr, dropErr); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		shipmentID:  shipmentID,
		senderID:    senderID,
		pickup:      pickup,
		drop:        drop,
		load:        load,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID   { return c.shipmentID }
func (c CreateShipmentCommand) SenderID() kernel.UUID     { return c.senderID }
func (c CreateShipmentCommand) Pickup() shipment.Endpoint { return c.pickup }
func (c CreateShipmentCommand) Drop() shipment.Endpoint   { return c.drop }
func (c CreateShipmentCommand) Load() kernel.Load         { return c.load }
func (c CreateShipmentCommand) Description() string       { return c.description }
