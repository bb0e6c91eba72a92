package shipment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the position of a shipment in its lifecycle.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Assigned
	PickedUp
	InTransit
	Delivered
	Confirmed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Confirmed: "CONFIRMED",
		Cancelled: "CANCELLED",
	}
}

// transitions is the fixed adjacency table of allowed successors.
var transitions = map[Status]map[Status]struct{}{
	Pending:   {Assigned: {}, Cancelled: {}},
	Assigned:  {PickedUp: {}, Cancelled: {}},
	PickedUp:  {InTransit: {}},
	InTransit: {Delivered: {}},
	Delivered: {Confirmed: {}},
	Confirmed: {},
	Cancelled: {},
}

// ParseStatus maps the persisted/wire name back to a Status.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", value))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether target is an allowed successor of s.
// Repeating the current status is never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitions[s][target]
	return ok
}

// TransitionTo returns target when the move is allowed and an
// *InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// IsActive reports statuses in which the shipment occupies a vehicle and a driver.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// IsTerminal reports statuses with no successors.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// ActiveStatuses lists the statuses counted as vehicle/driver occupancy.
func ActiveStatuses() []Status {
	return []Status{Assigned, PickedUp, InTransit}
}

// rank orders statuses along the main path; used to check milestone consistency.
func (s Status) rank() int {
	switch s {
	case Pending:
		return 0
	case Assigned:
		return 1
	case PickedUp:
		return 2
	case InTransit:
		return 3
	case Delivered:
		return 4
	case Confirmed:
		return 5
	default:
		return -1
	}
}
