package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/timeline"
)

// TimelineRepository is append-only: entries are never updated or deleted.
type TimelineRepository interface {
	Append(ctx context.Context, entry timeline.Entry) error
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]timeline.Entry, error)
}
