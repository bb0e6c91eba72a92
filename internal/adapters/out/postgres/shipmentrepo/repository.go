package shipmentrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormShipmentRepository implements ports.ShipmentRepository.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column and bumps version, guarded by the version the
// aggregate was loaded with.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{ID: dto.ID}).
		Where("version = ?", aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("shipment", aggregate.ID().String(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate adds SELECT ... FOR UPDATE. Dialects without row locks
// (sqlite) drop the clause and rely on database-level locking.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) get(db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) ListPending(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", shipment.Pending.String()).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ShipmentDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func (r *GormShipmentRepository) CountActiveByVehicle(ctx context.Context, vehicleID kernel.UUID, excluding ...kernel.UUID) (int64, error) {
	query := r.activeQuery(ctx).Where("vehicle_id = ?", vehicleID.Bytes())
	if len(excluding) > 0 {
		ids := make([]any, 0, len(excluding))
		for _, id := range excluding {
			ids = append(ids, id.Bytes())
		}
		query = query.Where("id NOT IN ?", ids)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShipmentRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error) {
	var count int64
	if err := r.activeQuery(ctx).Where("driver_id = ?", driverID.Bytes()).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShipmentRepository) activeQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("status IN ?", ActiveStatusNames())
}

// ActiveStatusNames lists the stored names of statuses that hold capacity.
func ActiveStatusNames() []string {
	active := shipment.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}
	return names
}
