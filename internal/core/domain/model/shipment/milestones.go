package shipment

import (
	"fmt"
	"time"

	"logistics/internal/pkg/errs"
)

// Milestones are the lifecycle timestamps. A milestone is set iff the
// shipment reached that stage at least once.
type Milestones struct {
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	ConfirmedAt *time.Time
}

func (m *Milestones) slot(s Status) **time.Time {
	switch s {
	case Assigned:
		return &m.AssignedAt
	case PickedUp:
		return &m.PickedUpAt
	case InTransit:
		return &m.InTransitAt
	case Delivered:
		return &m.DeliveredAt
	case Confirmed:
		return &m.ConfirmedAt
	default:
		return nil
	}
}

// stamp sets the milestone for s unless it is already set.
func (m *Milestones) stamp(s Status, at time.Time) {
	slot := m.slot(s)
	if slot == nil || *slot != nil {
		return
	}
	t := at
	*slot = &t
}

func (m Milestones) clone() Milestones {
	c := Milestones{CreatedAt: m.CreatedAt}
	for _, s := range []Status{Assigned, PickedUp, InTransit, Delivered, Confirmed} {
		if src := *m.slot(s); src != nil {
			c.stamp(s, *src)
		}
	}
	return c
}

// validateFor checks milestones against the current status.
// A cancelled shipment may or may not have been assigned first.
func (m Milestones) validateFor(status Status) error {
	if m.CreatedAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}

	reached := status.rank()
	if status == Cancelled {
		reached = 0
	}

	for _, s := range []Status{Assigned, PickedUp, InTransit, Delivered, Confirmed} {
		set := *m.slot(s) != nil
		switch {
		case s.rank() <= reached && !set:
			return errs.NewValueIsInvalidErrorWithCause("milestones",
				fmt.Errorf("%s reached without %s timestamp", status, s))
		case s.rank() > reached && set && !(status == Cancelled && s == Assigned):
			return errs.NewValueIsInvalidErrorWithCause("milestones",
				fmt.Errorf("%s timestamp set while status is %s", s, status))
		}
	}
	return nil
}
