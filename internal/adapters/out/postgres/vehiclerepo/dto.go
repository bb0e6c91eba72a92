// Package vehiclerepo persists vehicles and their capacity counters with GORM.
package vehiclerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Plate           string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Type            string          `gorm:"type:varchar(20);not null"`
	CapacityWeight  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	CapacityVolume  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UsedWeight      decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UsedVolume      decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	ZoneID          *uuid.UUID      `gorm:"type:uuid;index"`
	DefaultDriverID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index"`
	Version         int             `gorm:"not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:              v.ID().Bytes(),
		Name:            v.Name(),
		Plate:           v.Plate(),
		Type:            string(v.Type()),
		CapacityWeight:  v.Capacity().Weight(),
		CapacityVolume:  v.Capacity().Volume(),
		UsedWeight:      v.Used().Weight(),
		UsedVolume:      v.Used().Volume(),
		Status:          v.Status().String(),
		ZoneID:          optionalUUID(v.ZoneID()),
		DefaultDriverID: optionalUUID(v.DefaultDriverID()),
		Version:         v.Version(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := vehicle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	capacity, err := kernel.NewLoad(dto.CapacityWeight, dto.CapacityVolume)
	if err != nil {
		return nil, err
	}
	used, err := kernel.NewLoad(dto.UsedWeight, dto.UsedVolume)
	if err != nil {
		return nil, err
	}

	snap := vehicle.Snapshot{
		ID:       id,
		Name:     dto.Name,
		Plate:    dto.Plate,
		Type:     vehicle.Type(dto.Type),
		Capacity: capacity,
		Used:     used,
		Status:   status,
		Version:  dto.Version,
	}
	if snap.ZoneID, err = optionalID(dto.ZoneID); err != nil {
		return nil, err
	}
	if snap.DefaultDriverID, err = optionalID(dto.DefaultDriverID); err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(snap)
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
