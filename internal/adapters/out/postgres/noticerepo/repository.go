// Package noticerepo stores delivered notifications and dispatch alerts so
// operators can read them back.
package noticerepo

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

type AlertDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind       string     `gorm:"type:varchar(32);not null;index"`
	ShipmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Message    string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

func (AlertDTO) TableName() string {
	return "system_alerts"
}

// GormNoticeRepository writes outside any unit of work; notices are recorded
// after the business transaction has already finished.
type GormNoticeRepository struct {
	db *gorm.DB
}

func NewGormNoticeRepository(db *gorm.DB) *GormNoticeRepository {
	return &GormNoticeRepository{db: db}
}

func (r *GormNoticeRepository) SaveNotification(ctx context.Context, n ports.Notification) error {
	dto := NotificationDTO{
		ID:        uuid.New(),
		UserID:    n.UserID.Bytes(),
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.At,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNoticeRepository) SaveAlert(ctx context.Context, a ports.SystemAlert) error {
	dto := AlertDTO{
		ID:         uuid.New(),
		Kind:       string(a.Kind),
		ShipmentID: a.ShipmentID.Bytes(),
		Message:    a.Message,
		CreatedAt:  a.At,
	}
	if a.ActorID != nil {
		raw := a.ActorID.Bytes()
		dto.ActorID = &raw
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListNotifications returns the newest notifications of a user first.
func (r *GormNoticeRepository) ListNotifications(ctx context.Context, userID kernel.UUID, limit int) ([]ports.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, ports.Notification{
			UserID:  userID,
			Kind:    ports.NotificationKind(dto.Kind),
			Title:   dto.Title,
			Message: dto.Message,
			At:      dto.CreatedAt,
		})
	}
	return out, nil
}

// ListAlerts returns the newest alerts of a shipment first.
func (r *GormNoticeRepository) ListAlerts(ctx context.Context, shipmentID kernel.UUID) ([]ports.SystemAlert, error) {
	var dtos []AlertDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]ports.SystemAlert, 0, len(dtos))
	for _, dto := range dtos {
		alert := ports.SystemAlert{
			Kind:       ports.AlertKind(dto.Kind),
			ShipmentID: shipmentID,
			Message:    dto.Message,
			At:         dto.CreatedAt,
		}
		if dto.ActorID != nil {
			actor, err := kernel.UUIDFromBytes((*dto.ActorID)[:])
			if err != nil {
				return nil, err
			}
			alert.ActorID = &actor
		}
		out = append(out, alert)
	}
	return out, nil
}
