package commands_test

import (
	"context"
	"testing"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

type MockAlertRecorder struct{ mock.Mock }

func (m *MockAlertRecorder) RecordAlert(ctx context.Context, alert ports.SystemAlert) {
	m.Called(ctx, alert)
}

type uowFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type lifecycleFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (u lifecycleFactory) Create() commands.LifecycleUoW { return u.f.Create() }

type fleetFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (u fleetFactory) Create() commands.FleetUoW { return u.f.Create() }

type shipmentFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (u shipmentFactory) Create() commands.ShipmentUoW { return u.f.Create() }

type zoneFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (u zoneFactory) Create() commands.ZoneUoW { return u.f.Create() }

// fixture runs handlers against real repositories on an in-memory database.
type fixture struct {
	t          *testing.T
	uows       *postgres.GormUnitOfWorkFactory
	notifier   *MockNotifier
	alerts     *MockAlertRecorder
	dispatcher services.ShipmentDispatcher
	sender     *user.User
	operator   *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Maybe()
	alerts := &MockAlertRecorder{}
	alerts.On("RecordAlert", mock.Anything, mock.Anything).Maybe()

	f := &fixture{
		t:          t,
		uows:       postgres.NewGormUnitOfWorkFactory(pgtest.NewSQLite(t)),
		notifier:   notifier,
		alerts:     alerts,
		dispatcher: services.NewShipmentDispatcher(services.NewCapacityLedger(zerolog.Nop(), nil)),
	}
	f.sender = f.user("Acme Traders", user.MSME)
	f.operator = f.user("Fleet Desk", user.FleetManager)
	return f
}

func (f *fixture) dispatchHandler() commands.DispatchShipmentCommandHandler {
	return commands.NewDispatchShipmentCommandHandler(uowFactory{f.uows}, f.dispatcher, f.notifier, f.alerts, nil, zerolog.Nop())
}

func (f *fixture) manualAssignHandler() commands.ManualAssignCommandHandler {
	return commands.NewManualAssignCommandHandler(uowFactory{f.uows}, f.dispatcher, f.notifier, nil, zerolog.Nop())
}

func (f *fixture) advanceHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(lifecycleFactory{f.uows}, f.dispatcher, f.notifier, nil, zerolog.Nop())
}

func (f *fixture) releaseHandler() commands.ReleaseVehicleCommandHandler {
	return commands.NewReleaseVehicleCommandHandler(lifecycleFactory{f.uows}, f.dispatcher)
}

func (f *fixture) reconcileHandler() commands.ReconcileVehicleOccupancyCommandHandler {
	return commands.NewReconcileVehicleOccupancyCommandHandler(fleetFactory{f.uows}, zerolog.Nop())
}

func (f *fixture) setVehicleStatusHandler() commands.SetVehicleStatusCommandHandler {
	return commands.NewSetVehicleStatusCommandHandler(uowFactory{f.uows}, zerolog.Nop())
}

func (f *fixture) setZoneStatusHandler() commands.SetZoneStatusCommandHandler {
	return commands.NewSetZoneStatusCommandHandler(zoneFactory{f.uows}, zerolog.Nop())
}

func (f *fixture) createHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(shipmentFactory{f.uows})
}

func (f *fixture) user(name string, role user.Role) *user.User {
	f.t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), name, "", "", role, true)
	require.NoError(f.t, err)
	require.NoError(f.t, f.uows.Create().UserRepository().Add(f.t.Context(), u))
	return u
}

func (f *fixture) driver(name string) *user.User {
	return f.user(name, user.Driver)
}

func (f *fixture) zone(name string, ring ...kernel.Point) *zone.Zone {
	f.t.Helper()
	z, err := zone.NewZone(kernel.NewUUID(), name, "", kernel.NewPolygon(ring))
	require.NoError(f.t, err)
	require.NoError(f.t, f.uows.Create().ZoneRepository().Add(f.t.Context(), z))
	return z
}

// centralZone is the Bangalore box (12.9..13.1, 77.5..77.7).
func (f *fixture) centralZone() *zone.Zone {
	return f.zone("Central",
		point(f.t, 12.9, 77.5), point(f.t, 12.9, 77.7), point(f.t, 13.1, 77.7), point(f.t, 13.1, 77.5))
}

func (f *fixture) vehicle(plate string, weight, volume float64, setup ...func(*vehicle.Vehicle)) *vehicle.Vehicle {
	f.t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "Truck "+plate, plate, vehicle.Truck, load(f.t, weight, volume))
	require.NoError(f.t, err)
	for _, fn := range setup {
		fn(v)
	}
	require.NoError(f.t, f.uows.Create().VehicleRepository().Add(f.t.Context(), v))
	return v
}

func (f *fixture) shipment(weight, volume float64, pickup *kernel.Point) *shipment.Shipment {
	f.t.Helper()
	from, err := shipment.NewEndpoint("12 MG Road", pickup, "Ravi", "+910000000001")
	require.NoError(f.t, err)
	to, err := shipment.NewEndpoint("4 Residency Road", nil, "Asha", "+910000000002")
	require.NoError(f.t, err)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), f.sender.ID(), from, to, load(f.t, weight, volume), "machine parts")
	require.NoError(f.t, err)
	s, err := f.createHandler().Handle(f.t.Context(), cmd)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) dispatch(s *shipment.Shipment, vehicleID, driverID *kernel.UUID) (commands.AssignedShipment, error) {
	f.t.Helper()
	actor := f.operator.ID()
	cmd, err := commands.NewDispatchShipmentCommand(s.ID(), vehicleID, driverID, &actor)
	require.NoError(f.t, err)
	return f.dispatchHandler().Handle(f.t.Context(), cmd)
}

func (f *fixture) advance(s *shipment.Shipment, target shipment.Status) (*shipment.Shipment, error) {
	f.t.Helper()
	actor := f.operator.ID()
	var receipt *shipment.DeliveryReceipt
	if target == shipment.Delivered {
		receipt = &shipment.DeliveryReceipt{ReceiverName: "Ravi"}
	}
	cmd, err := commands.NewAdvanceStatusCommand(s.ID(), target, &actor, "", receipt)
	require.NoError(f.t, err)
	return f.advanceHandler().Handle(f.t.Context(), cmd)
}

func (f *fixture) mustAdvance(s *shipment.Shipment, targets ...shipment.Status) {
	f.t.Helper()
	for _, target := range targets {
		_, err := f.advance(s, target)
		require.NoError(f.t, err, "advance to %s", target)
	}
}

func (f *fixture) reloadShipment(id kernel.UUID) *shipment.Shipment {
	f.t.Helper()
	s, err := f.uows.Create().ShipmentRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) reloadVehicle(id kernel.UUID) *vehicle.Vehicle {
	f.t.Helper()
	v, err := f.uows.Create().VehicleRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return v
}

func (f *fixture) timeline(id kernel.UUID) []timeline.Entry {
	f.t.Helper()
	entries, err := f.uows.Create().TimelineRepository().ListByShipment(f.t.Context(), id)
	require.NoError(f.t, err)
	return entries
}

func (f *fixture) notified(userID kernel.UUID, kind ports.NotificationKind, title string) bool {
	for _, call := range f.notifier.Calls {
		n, ok := call.Arguments.Get(1).(ports.Notification)
		if ok && n.UserID.IsEqual(userID) && n.Kind == kind && n.Title == title {
			return true
		}
	}
	return false
}

func (f *fixture) alerted(shipmentID kernel.UUID, kind ports.AlertKind) bool {
	for _, call := range f.alerts.Calls {
		a, ok := call.Arguments.Get(1).(ports.SystemAlert)
		if ok && a.ShipmentID.IsEqual(shipmentID) && a.Kind == kind {
			return true
		}
	}
	return false
}

func point(t *testing.T, lat, lng float64) kernel.Point {
	t.Helper()
	p, err := kernel.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func load(t *testing.T, weight, volume float64) kernel.Load {
	t.Helper()
	l, err := kernel.NewLoadFromFloat(weight, volume)
	require.NoError(t, err)
	return l
}

func idPtr(id kernel.UUID) *kernel.UUID {
	return &id
}
