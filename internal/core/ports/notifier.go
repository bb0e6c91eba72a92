package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

type NotificationKind string

const (
	NotificationAssignment NotificationKind = "ASSIGNMENT"
	NotificationOverload   NotificationKind = "OVERLOAD"
	NotificationAlert      NotificationKind = "ALERT"
	NotificationDelay      NotificationKind = "DELAY"
)

type Notification struct {
	UserID  kernel.UUID
	Kind    NotificationKind
	Title   string
	Message string
	At      time.Time
}

// Notifier delivers user notifications. Notify must not block on I/O and
// never reports failure to the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type AlertKind string

const (
	AlertNoCapacity AlertKind = "NO_CAPACITY_AVAILABLE"
	AlertNoDriver   AlertKind = "NO_DRIVER_AVAILABLE"
)

// SystemAlert records a dispatch that could not be satisfied.
type SystemAlert struct {
	Kind       AlertKind
	ShipmentID kernel.UUID
	ActorID    *kernel.UUID
	Message    string
	At         time.Time
}

// AlertRecorder is fire-and-forget like Notifier.
type AlertRecorder interface {
	RecordAlert(ctx context.Context, alert SystemAlert)
}
