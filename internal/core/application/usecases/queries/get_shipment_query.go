package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery or NewGetShipmentByTrackingNumberQuery",
)

// GetShipmentQuery looks a shipment up by id or by tracking number.
//
// Example:
//
//	query, _ := NewGetShipmentByTrackingNumberQuery("SHP-3F9A01BC22")
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown tracking number
//	}
//	for _, entry := range view.Timeline {
//	    fmt.Println(entry.At, entry.Status, entry.Note)
//	}
type GetShipmentQuery struct {
	id             *kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(id kernel.UUID) (GetShipmentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentQuery{}, errs.NewValueIsInvalidErrorWithCause("shipment_id", err)
	}
	return GetShipmentQuery{id: &id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetShipmentByTrackingNumberQuery(trackingNumber string) (GetShipmentQuery, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("tracking_number")
	}
	return GetShipmentQuery{trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentView is the read model of one shipment with its history.
type ShipmentView struct {
	ID             kernel.UUID
	TrackingNumber string
	Status         string
	SenderID       kernel.UUID
	PickupAddress  string
	DropAddress    string
	Weight         decimal.Decimal
	Volume         decimal.Decimal
	Description    string
	ZoneID         *kernel.UUID
	ZoneName       string
	VehicleID      *kernel.UUID
	VehiclePlate   string
	DriverID       *kernel.UUID
	DriverName     string
	CreatedAt      time.Time
	AssignedAt     *time.Time
	DeliveredAt    *time.Time
	Timeline       []TimelineEntryView
}

type TimelineEntryView struct {
	Status  string
	ActorID *kernel.UUID
	Note    string
	At      time.Time
}
