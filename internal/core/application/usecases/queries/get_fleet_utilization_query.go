package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetFleetUtilizationQueryIsNotConstructed = errors.New(
	"GetFleetUtilizationQuery must be created via NewGetFleetUtilizationQuery constructor",
)

// GetFleetUtilizationQuery reports capacity usage for every vehicle, or
// only for vehicles homed in one zone.
type GetFleetUtilizationQuery struct {
	zoneID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetFleetUtilizationQuery(zoneID *kernel.UUID) GetFleetUtilizationQuery {
	return GetFleetUtilizationQuery{zoneID: zoneID, guard: guard.NewConstructorGuard()}
}

func (q GetFleetUtilizationQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetUtilizationQueryIsNotConstructed)
}

// VehicleUtilization percentages are rounded to one decimal place.
type VehicleUtilization struct {
	VehicleID       kernel.UUID
	Plate           string
	Type            string
	Status          string
	ZoneName        string
	CapacityWeight  decimal.Decimal
	CapacityVolume  decimal.Decimal
	UsedWeight      decimal.Decimal
	UsedVolume      decimal.Decimal
	WeightPercent   decimal.Decimal
	VolumePercent   decimal.Decimal
	ActiveShipments int64
}
