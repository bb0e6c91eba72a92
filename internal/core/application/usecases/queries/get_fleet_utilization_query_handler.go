package queries

import (
	"context"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type GetFleetUtilizationQueryHandler struct {
	db *gorm.DB
}

func NewGetFleetUtilizationQueryHandler(db *gorm.DB) GetFleetUtilizationQueryHandler {
	return GetFleetUtilizationQueryHandler{db: db}
}

func (h GetFleetUtilizationQueryHandler) Handle(ctx context.Context, query GetFleetUtilizationQuery) ([]VehicleUtilization, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sql strings.Builder
	sql.WriteString(`
		SELECT
			v.id,
			v.plate,
			v.type,
			v.status,
			z.name,
			v.capacity_weight,
			v.capacity_volume,
			v.used_weight,
			v.used_volume,
			(
				SELECT COUNT(*)
				FROM shipments s
				WHERE s.vehicle_id = v.id AND s.status IN ?
			) AS active_shipments
		FROM vehicles v
		LEFT JOIN zones z ON z.id = v.zone_id
	`)
	args := []any{activeStatusNames()}
	if query.zoneID != nil {
		sql.WriteString(" WHERE v.zone_id = ?")
		args = append(args, query.zoneID.Bytes())
	}
	sql.WriteString(" ORDER BY v.created_at, v.id")

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fleet := make([]VehicleUtilization, 0)
	for rows.Next() {
		var (
			u        VehicleUtilization
			id       uuid.UUID
			zoneName *string
		)
		if err = rows.Scan(
			&id,
			&u.Plate,
			&u.Type,
			&u.Status,
			&zoneName,
			&u.CapacityWeight,
			&u.CapacityVolume,
			&u.UsedWeight,
			&u.UsedVolume,
			&u.ActiveShipments,
		); err != nil {
			return nil, err
		}

		if u.VehicleID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		u.ZoneName = deref(zoneName)
		u.WeightPercent = percent(u.UsedWeight, u.CapacityWeight)
		u.VolumePercent = percent(u.UsedVolume, u.CapacityVolume)
		fleet = append(fleet, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fleet, nil
}

func percent(used, capacity decimal.Decimal) decimal.Decimal {
	if capacity.IsZero() {
		return decimal.Zero
	}
	return used.Mul(hundred).Div(capacity).Round(1)
}

func activeStatusNames() []string {
	active := shipment.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}
	return names
}
