package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/zone"
)

type ZoneRepository interface {
	Add(ctx context.Context, aggregate *zone.Zone) error
	Get(ctx context.Context, id kernel.UUID) (*zone.Zone, error)

	// Update rewrites everything but the creation time. Zones are only
	// edited by operators, so there is no version check.
	Update(ctx context.Context, aggregate *zone.Zone) error

	// ListActive returns ACTIVE zones in matching order (creation time, then id).
	ListActive(ctx context.Context) ([]*zone.Zone, error)
}
