package vehicle

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
)

// ErrCapacityExceeded matches every *CapacityExceededError via errors.Is.
var ErrCapacityExceeded = errors.New("vehicle capacity exceeded")

// CapacityExceededError reports the headroom left on the vehicle.
type CapacityExceededError struct {
	VehicleID kernel.UUID
	Requested kernel.Load
	Remaining kernel.Load
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s. Remaining: %skg / %sm³ (requested %s)",
		ErrCapacityExceeded, e.Remaining.Weight(), e.Remaining.Volume(), e.Requested)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
