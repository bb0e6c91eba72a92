package vehicle

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the vehicle's availability flag.
// AVAILABLE and ON_TRIP are derived from active shipments;
// MAINTENANCE and INACTIVE are set by operators and stick until cleared.
type Status int

const (
	UnknownStatus Status = iota
	Available
	OnTrip
	Maintenance
	Inactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Available:     "AVAILABLE",
		OnTrip:        "ON_TRIP",
		Maintenance:   "MAINTENANCE",
		Inactive:      "INACTIVE",
	}
}

// ParseStatus accepts the names returned by String, case-insensitively.
// UNKNOWN is never accepted.
//
// Example:
//
//	status, err := vehicle.ParseStatus("maintenance") // Maintenance, nil
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == normalized {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("vehicle_status", fmt.Errorf("%q is not a vehicle status", value))
}

// Validate rejects UnknownStatus and out-of-range values.
func (s Status) Validate() error {
	if s < Available || s > Inactive {
		return errs.NewValueIsInvalidErrorWithCause("vehicle_status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsManual reports operator-controlled statuses that occupancy never overrides.
func (s Status) IsManual() bool {
	return s == Maintenance || s == Inactive
}

// Type is the body type of a vehicle.
type Type string

const (
	Truck     Type = "TRUCK"
	Van       Type = "VAN"
	Pickup    Type = "PICKUP"
	Flatbed   Type = "FLATBED"
	Container Type = "CONTAINER"
)

// Validate accepts only the declared Type constants.
func (t Type) Validate() error {
	switch t {
	case Truck, Van, Pickup, Flatbed, Container:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle_type", fmt.Errorf("%q is not a vehicle type", string(t)))
	}
}
