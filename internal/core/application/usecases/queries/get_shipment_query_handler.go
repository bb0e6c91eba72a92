package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

type shipmentRow struct {
	ID             uuid.UUID
	TrackingNumber string
	Status         string
	SenderID       uuid.UUID
	PickupAddress  string
	DropAddress    string
	Weight         decimal.Decimal
	Volume         decimal.Decimal
	Description    string
	ZoneID         *uuid.UUID
	ZoneName       *string
	VehicleID      *uuid.UUID
	VehiclePlate   *string
	DriverID       *uuid.UUID
	DriverName     *string
	CreatedAt      time.Time
	AssignedAt     *time.Time
	DeliveredAt    *time.Time
}

const shipmentViewSQL = `
	SELECT
		s.id,
		s.tracking_number,
		s.status,
		s.sender_id,
		s.pickup_address,
		s.drop_address,
		s.weight,
		s.volume,
		s.description,
		s.zone_id,
		z.name AS zone_name,
		s.vehicle_id,
		v.plate AS vehicle_plate,
		s.driver_id,
		u.name AS driver_name,
		s.created_at,
		s.assigned_at,
		s.delivered_at
	FROM shipments s
	LEFT JOIN zones z ON z.id = s.zone_id
	LEFT JOIN vehicles v ON v.id = s.vehicle_id
	LEFT JOIN users u ON u.id = s.driver_id
`

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	var (
		rows []shipmentRow
		err  error
		key  any
	)
	db := h.db.WithContext(ctx)
	if query.id != nil {
		key = query.id.String()
		err = db.Raw(shipmentViewSQL+" WHERE s.id = ?", query.id.Bytes()).Scan(&rows).Error
	} else {
		key = query.trackingNumber
		err = db.Raw(shipmentViewSQL+" WHERE s.tracking_number = ?", query.trackingNumber).Scan(&rows).Error
	}
	if err != nil {
		return ShipmentView{}, err
	}
	if len(rows) == 0 {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", key)
	}

	view, err := rows[0].toView()
	if err != nil {
		return ShipmentView{}, err
	}

	if view.Timeline, err = h.timeline(ctx, rows[0].ID); err != nil {
		return ShipmentView{}, err
	}
	return view, nil
}

func (h GetShipmentQueryHandler) timeline(ctx context.Context, shipmentID uuid.UUID) ([]TimelineEntryView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, actor_id, note, occurred_at
		FROM shipment_timeline
		WHERE shipment_id = ?
		ORDER BY occurred_at, id
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimelineEntryView, 0)
	for rows.Next() {
		var (
			entry   TimelineEntryView
			actorID *uuid.UUID
			note    *string
		)
		if err = rows.Scan(&entry.Status, &actorID, &note, &entry.At); err != nil {
			return nil, err
		}
		if entry.ActorID, err = toKernelID(actorID); err != nil {
			return nil, err
		}
		if note != nil {
			entry.Note = *note
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r shipmentRow) toView() (ShipmentView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ShipmentView{}, err
	}
	senderID, err := kernel.UUIDFromBytes(r.SenderID[:])
	if err != nil {
		return ShipmentView{}, err
	}

	view := ShipmentView{
		ID:             id,
		TrackingNumber: r.TrackingNumber,
		Status:         r.Status,
		SenderID:       senderID,
		PickupAddress:  r.PickupAddress,
		DropAddress:    r.DropAddress,
		Weight:         r.Weight,
		Volume:         r.Volume,
		Description:    r.Description,
		ZoneName:       deref(r.ZoneName),
		VehiclePlate:   deref(r.VehiclePlate),
		DriverName:     deref(r.DriverName),
		CreatedAt:      r.CreatedAt,
		AssignedAt:     r.AssignedAt,
		DeliveredAt:    r.DeliveredAt,
	}
	if view.ZoneID, err = toKernelID(r.ZoneID); err != nil {
		return ShipmentView{}, err
	}
	if view.VehicleID, err = toKernelID(r.VehicleID); err != nil {
		return ShipmentView{}, err
	}
	if view.DriverID, err = toKernelID(r.DriverID); err != nil {
		return ShipmentView{}, err
	}
	return view, nil
}

func toKernelID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
