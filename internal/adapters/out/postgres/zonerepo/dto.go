// Package zonerepo stores service zones. Boundaries are kept as JSON
// [lng, lat] pairs, the GeoJSON axis order.
package zonerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

type ZoneDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name        string       `gorm:"type:varchar(255);not null"`
	Description string       `gorm:"type:text"`
	Boundary    [][2]float64 `gorm:"type:text;serializer:json;not null"`
	Color       string       `gorm:"type:varchar(16);not null"`
	Status      string       `gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;index"`
}

func (ZoneDTO) TableName() string {
	return "zones"
}

func fromDomain(z *zone.Zone) ZoneDTO {
	vertices := z.Area().Vertices()
	boundary := make([][2]float64, 0, len(vertices))
	for _, p := range vertices {
		boundary = append(boundary, [2]float64{p.Lng(), p.Lat()})
	}

	return ZoneDTO{
		ID:          z.ID().Bytes(),
		Name:        z.Name(),
		Description: z.Description(),
		Boundary:    boundary,
		Color:       z.Color(),
		Status:      z.Status().String(),
	}
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := zone.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	ring := make([]kernel.Point, 0, len(dto.Boundary))
	for _, pair := range dto.Boundary {
		p, err := kernel.NewPoint(pair[1], pair[0])
		if err != nil {
			return nil, err
		}
		ring = append(ring, p)
	}

	return zone.RestoreZone(id, dto.Name, dto.Description, kernel.NewPolygon(ring), dto.Color, status)
}
