// Package commands contains the write side of the engine. Each command is a
// validated value built by its constructor; each handler opens a unit of work,
// locks what it mutates, commits, and only then talks to fire-and-forget
// collaborators (notifier, alert recorder, metrics).
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces, narrowed per handler.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	TimelineRepoFactory interface {
		TimelineRepository() ports.TimelineRepository
	}

	// ShipmentUoW covers shipment creation.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		TimelineRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// LifecycleUoW covers status changes and capacity release.
	LifecycleUoW interface {
		TxManager
		ShipmentRepoFactory
		VehicleRepoFactory
		TimelineRepoFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// FleetUoW covers vehicle maintenance over shipment counts.
	FleetUoW interface {
		TxManager
		ShipmentRepoFactory
		VehicleRepoFactory
	}

	FleetUoWFactory interface {
		Create() FleetUoW
	}

	// ZoneUoW covers zone administration.
	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
	}

	ZoneUoWFactory interface {
		Create() ZoneUoW
	}

	// UoW covers dispatch and fleet edits, which read every aggregate type.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//	// ... mutate, Update, Append
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		VehicleRepoFactory
		ZoneRepoFactory
		UserRepoFactory
		TimelineRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
