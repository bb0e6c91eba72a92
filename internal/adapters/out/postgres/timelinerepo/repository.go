// Package timelinerepo stores the append-only shipment history.
package timelinerepo

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID  `gorm:"type:uuid;not null;index:idx_timeline_shipment_time,priority:1"`
	Status     string     `gorm:"type:varchar(20);not null"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Note       string     `gorm:"type:text"`
	OccurredAt time.Time  `gorm:"not null;index:idx_timeline_shipment_time,priority:2"`
}

func (EntryDTO) TableName() string {
	return "shipment_timeline"
}

type GormTimelineRepository struct {
	db *gorm.DB
}

func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

func (r *GormTimelineRepository) Append(ctx context.Context, entry timeline.Entry) error {
	dto := EntryDTO{
		ID:         entry.ID().Bytes(),
		ShipmentID: entry.ShipmentID().Bytes(),
		Status:     entry.Status().String(),
		Note:       entry.Note(),
		OccurredAt: entry.At(),
	}
	if actor := entry.ActorID(); actor != nil {
		raw := actor.Bytes()
		dto.ActorID = &raw
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByShipment returns entries oldest first.
func (r *GormTimelineRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]timeline.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]timeline.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toDomain(dto EntryDTO) (timeline.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return timeline.Entry{}, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return timeline.Entry{}, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return timeline.Entry{}, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		a, err := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if err != nil {
			return timeline.Entry{}, err
		}
		actorID = &a
	}

	return timeline.Restore(id, shipmentID, status, actorID, dto.Note, dto.OccurredAt), nil
}
