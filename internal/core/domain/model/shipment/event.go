package shipment

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// TransitionEvent describes an accepted status change. Persisting it is the
// caller's job (see timeline.Entry).
type TransitionEvent struct {
	ShipmentID kernel.UUID
	From       Status
	To         Status
	At         time.Time
}
