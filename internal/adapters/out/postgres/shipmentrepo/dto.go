// Package shipmentrepo persists shipment aggregates with GORM.
package shipmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is one row of the shipments table. Statuses are stored by name.
type ShipmentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	SenderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Pickup         EndpointDTO     `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop           EndpointDTO     `gorm:"embedded;embeddedPrefix:drop_"`
	Weight         decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Volume         decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Description    string          `gorm:"type:text"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	ZoneID         *uuid.UUID      `gorm:"type:uuid;index"`
	VehicleID      *uuid.UUID      `gorm:"type:uuid;index"`
	DriverID       *uuid.UUID      `gorm:"type:uuid;index"`
	CapacityHeld   bool            `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	InTransitAt    *time.Time
	DeliveredAt    *time.Time
	ConfirmedAt    *time.Time
	HasReceipt     bool       `gorm:"not null"`
	Receipt        ReceiptDTO `gorm:"embedded;embeddedPrefix:receipt_"`
	Version        int        `gorm:"not null"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// EndpointDTO is embedded twice, once per prefix.
type EndpointDTO struct {
	Address string   `gorm:"type:text;not null"`
	Lat     *float64 `gorm:"type:double precision"`
	Lng     *float64 `gorm:"type:double precision"`
	Contact string   `gorm:"type:varchar(255)"`
	Phone   string   `gorm:"type:varchar(32)"`
}

type ReceiptDTO struct {
	ReceiverName      string `gorm:"type:varchar(255)"`
	ReceiverPhone     string `gorm:"type:varchar(32)"`
	PhotoURL          string `gorm:"type:text"`
	Notes             string `gorm:"type:text"`
	DriverConfirmed   bool
	ReceiverConfirmed bool
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	m := s.Milestones()
	dto := ShipmentDTO{
		ID:             s.ID().Bytes(),
		TrackingNumber: s.TrackingNumber(),
		SenderID:       s.SenderID().Bytes(),
		Pickup:         endpointFromDomain(s.Pickup()),
		Drop:           endpointFromDomain(s.Drop()),
		Weight:         s.Load().Weight(),
		Volume:         s.Load().Volume(),
		Description:    s.Description(),
		Status:         s.Status().String(),
		ZoneID:         optionalUUID(s.ZoneID()),
		VehicleID:      optionalUUID(s.VehicleID()),
		DriverID:       optionalUUID(s.DriverID()),
		CapacityHeld:   s.CapacityHeld(),
		CreatedAt:      m.CreatedAt,
		AssignedAt:     m.AssignedAt,
		PickedUpAt:     m.PickedUpAt,
		InTransitAt:    m.InTransitAt,
		DeliveredAt:    m.DeliveredAt,
		ConfirmedAt:    m.ConfirmedAt,
		Version:        s.Version(),
	}

	if receipt, ok := s.Receipt(); ok {
		dto.HasReceipt = true
		dto.Receipt = ReceiptDTO{
			ReceiverName:      receipt.ReceiverName,
			ReceiverPhone:     receipt.ReceiverPhone,
			PhotoURL:          receipt.PhotoURL,
			Notes:             receipt.Notes,
			DriverConfirmed:   receipt.DriverConfirmed,
			ReceiverConfirmed: receipt.ReceiverConfirmed,
		}
	}
	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	load, err := kernel.NewLoad(dto.Weight, dto.Volume)
	if err != nil {
		return nil, err
	}
	pickup, err := endpointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	drop, err := endpointToDomain(dto.Drop)
	if err != nil {
		return nil, err
	}

	snap := shipment.Snapshot{
		ID:             id,
		TrackingNumber: dto.TrackingNumber,
		SenderID:       senderID,
		Pickup:         pickup,
		Drop:           drop,
		Load:           load,
		Description:    dto.Description,
		Status:         status,
		CapacityHeld:   dto.CapacityHeld,
		Milestones: shipment.Milestones{
			CreatedAt:   dto.CreatedAt,
			AssignedAt:  dto.AssignedAt,
			PickedUpAt:  dto.PickedUpAt,
			InTransitAt: dto.InTransitAt,
			DeliveredAt: dto.DeliveredAt,
			ConfirmedAt: dto.ConfirmedAt,
		},
		Version: dto.Version,
	}
	if snap.ZoneID, err = optionalID(dto.ZoneID); err != nil {
		return nil, err
	}
	if snap.VehicleID, err = optionalID(dto.VehicleID); err != nil {
		return nil, err
	}
	if snap.DriverID, err = optionalID(dto.DriverID); err != nil {
		return nil, err
	}
	if dto.HasReceipt {
		snap.Receipt = &shipment.DeliveryReceipt{
			ReceiverName:      dto.Receipt.ReceiverName,
			ReceiverPhone:     dto.Receipt.ReceiverPhone,
			PhotoURL:          dto.Receipt.PhotoURL,
			Notes:             dto.Receipt.Notes,
			DriverConfirmed:   dto.Receipt.DriverConfirmed,
			ReceiverConfirmed: dto.Receipt.ReceiverConfirmed,
		}
	}

	return shipment.RestoreShipment(snap)
}

func endpointFromDomain(e shipment.Endpoint) EndpointDTO {
	dto := EndpointDTO{Address: e.Address(), Contact: e.Contact(), Phone: e.Phone()}
	if p, ok := e.Point(); ok {
		lat, lng := p.Lat(), p.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	return dto
}

// endpointToDomain treats a half-set coordinate pair as no coordinates.
func endpointToDomain(dto EndpointDTO) (shipment.Endpoint, error) {
	var point *kernel.Point
	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return shipment.Endpoint{}, err
		}
		point = &p
	}
	return shipment.NewEndpoint(dto.Address, point, dto.Contact, dto.Phone)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
