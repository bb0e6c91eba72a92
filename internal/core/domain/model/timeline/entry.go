// Package timeline models the append-only history of shipment status changes.
package timeline

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// Entry is immutable once created.
type Entry struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	status     shipment.Status
	actorID    *kernel.UUID
	note       string
	at         time.Time
}

// FromEvent builds the entry for an accepted transition.
func FromEvent(event shipment.TransitionEvent, actorID *kernel.UUID, note string) Entry {
	return Restore(kernel.NewUUID(), event.ShipmentID, event.To, actorID, note, event.At)
}

// Restore rebuilds a persisted entry.
func Restore(id, shipmentID kernel.UUID, status shipment.Status, actorID *kernel.UUID, note string, at time.Time) Entry {
	var actor *kernel.UUID
	if actorID != nil {
		a := *actorID
		actor = &a
	}
	return Entry{id: id, shipmentID: shipmentID, status: status, actorID: actor, note: note, at: at}
}

func (e Entry) ID() kernel.UUID         { return e.id }
func (e Entry) ShipmentID() kernel.UUID { return e.shipmentID }
func (e Entry) Status() shipment.Status { return e.status }
func (e Entry) Note() string            { return e.note }
func (e Entry) At() time.Time           { return e.at }

// ActorID returns a copy of the acting user id, or nil for system transitions.
func (e Entry) ActorID() *kernel.UUID {
	if e.actorID == nil {
		return nil
	}
	a := *e.actorID
	return &a
}
