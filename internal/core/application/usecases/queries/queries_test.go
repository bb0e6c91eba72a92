package queries_test

import (
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type QueriesTestSuite struct {
	suite.Suite
	db   *gorm.DB
	uows *postgres.GormUnitOfWorkFactory

	zone     *zone.Zone
	truck    *vehicle.Vehicle
	van      *vehicle.Vehicle
	driver   *user.User
	sender   *user.User
	assigned *shipment.Shipment
	pending  *shipment.Shipment
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	t := s.T()
	ctx := t.Context()
	s.db = pgtest.NewSQLite(t)
	s.uows = postgres.NewGormUnitOfWorkFactory(s.db)
	repos := s.uows.Create()
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	var err error
	s.zone, err = zone.NewZone(kernel.NewUUID(), "Central", "", kernel.NewPolygon([]kernel.Point{
		s.point(12.9, 77.5), s.point(12.9, 77.7), s.point(13.1, 77.7), s.point(13.1, 77.5),
	}))
	s.Require().NoError(err)
	s.Require().NoError(repos.ZoneRepository().Add(ctx, s.zone))

	s.driver, err = user.NewUser(kernel.NewUUID(), "Suresh", "suresh@example.com", "", user.Driver, true)
	s.Require().NoError(err)
	s.Require().NoError(repos.UserRepository().Add(ctx, s.driver))
	s.sender, err = user.NewUser(kernel.NewUUID(), "Acme", "ops@acme.example.com", "", user.Vendor, true)
	s.Require().NoError(err)
	s.Require().NoError(repos.UserRepository().Add(ctx, s.sender))

	s.truck, err = vehicle.NewVehicle(kernel.NewUUID(), "Truck", "KA01AB1234", vehicle.Truck, s.load(5000, 25))
	s.Require().NoError(err)
	s.truck.AssignZone(ptr(s.zone.ID()))
	s.van, err = vehicle.NewVehicle(kernel.NewUUID(), "Van", "KA01VN0001", vehicle.Van, s.load(800, 4))
	s.Require().NoError(err)

	pickup := s.point(13.0, 77.6)
	from, err := shipment.NewEndpoint("12 MG Road", &pickup, "", "")
	s.Require().NoError(err)
	to, err := shipment.NewEndpoint("4 Residency Road", nil, "", "")
	s.Require().NoError(err)

	s.assigned, err = shipment.NewShipment(kernel.NewUUID(), s.sender.ID(), from, to, s.load(1250, 5), "tiles", now)
	s.Require().NoError(err)
	s.Require().NoError(s.truck.Reserve(s.assigned.Load()))
	event, err := s.assigned.Assign(s.truck.ID(), s.driver.ID(), ptr(s.zone.ID()), now.Add(time.Minute))
	s.Require().NoError(err)

	s.pending, err = shipment.NewShipment(kernel.NewUUID(), s.sender.ID(), from, to, s.load(10, 0.1), "", now)
	s.Require().NoError(err)

	s.Require().NoError(repos.VehicleRepository().Add(ctx, s.truck))
	s.Require().NoError(repos.VehicleRepository().Add(ctx, s.van))
	s.Require().NoError(repos.ShipmentRepository().Add(ctx, s.assigned))
	s.Require().NoError(repos.ShipmentRepository().Add(ctx, s.pending))

	created := shipment.TransitionEvent{ShipmentID: s.assigned.ID(), To: shipment.Pending, At: now}
	s.Require().NoError(repos.TimelineRepository().Append(ctx, timeline.FromEvent(created, ptr(s.sender.ID()), "Shipment created")))
	s.Require().NoError(repos.TimelineRepository().Append(ctx, timeline.FromEvent(event, nil, "Assigned to vehicle KA01AB1234")))
}

func (s *QueriesTestSuite) TestGetShipmentByID() {
	query, err := queries.NewGetShipmentQuery(s.assigned.ID())
	s.Require().NoError(err)

	view, err := queries.NewGetShipmentQueryHandler(s.db).Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.Equal(s.assigned.TrackingNumber(), view.TrackingNumber)
	s.Equal("ASSIGNED", view.Status)
	s.Equal("KA01AB1234", view.VehiclePlate)
	s.Equal("Suresh", view.DriverName)
	s.Equal("Central", view.ZoneName)
	s.Require().NotNil(view.VehicleID)
	s.True(view.VehicleID.IsEqual(s.truck.ID()))
	s.True(view.Weight.Equal(decimal.NewFromInt(1250)))
	s.NotNil(view.AssignedAt)
	s.Nil(view.DeliveredAt)

	s.Require().Len(view.Timeline, 2)
	s.Equal("PENDING", view.Timeline[0].Status)
	s.True(view.Timeline[0].ActorID.IsEqual(s.sender.ID()))
	s.Equal("Assigned to vehicle KA01AB1234", view.Timeline[1].Note)
	s.Nil(view.Timeline[1].ActorID)
}

func (s *QueriesTestSuite) TestGetShipmentByTrackingNumber() {
	query, err := queries.NewGetShipmentByTrackingNumberQuery(" " + s.pending.TrackingNumber() + " ")
	s.Require().NoError(err)

	view, err := queries.NewGetShipmentQueryHandler(s.db).Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.True(view.ID.IsEqual(s.pending.ID()))
	s.Equal("PENDING", view.Status)
	s.Nil(view.VehicleID)
	s.Empty(view.VehiclePlate)
	s.Empty(view.Timeline)
}

func (s *QueriesTestSuite) TestGetShipmentNotFound() {
	query, err := queries.NewGetShipmentByTrackingNumberQuery("SHP-0000000000")
	s.Require().NoError(err)

	_, err = queries.NewGetShipmentQueryHandler(s.db).Handle(s.T().Context(), query)

	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestGetFleetUtilization() {
	fleet, err := queries.NewGetFleetUtilizationQueryHandler(s.db).Handle(s.T().Context(), queries.NewGetFleetUtilizationQuery(nil))

	s.Require().NoError(err)
	s.Require().Len(fleet, 2)

	truck := fleet[0]
	s.Equal("KA01AB1234", truck.Plate)
	s.Equal("ON_TRIP", truck.Status)
	s.Equal("Central", truck.ZoneName)
	s.Equal(int64(1), truck.ActiveShipments)
	s.True(truck.WeightPercent.Equal(decimal.NewFromInt(25)), truck.WeightPercent.String())
	s.True(truck.VolumePercent.Equal(decimal.NewFromInt(20)), truck.VolumePercent.String())

	van := fleet[1]
	s.Equal("AVAILABLE", van.Status)
	s.Empty(van.ZoneName)
	s.Zero(van.ActiveShipments)
	s.True(van.WeightPercent.IsZero())
}

func (s *QueriesTestSuite) TestGetFleetUtilizationByZone() {
	fleet, err := queries.NewGetFleetUtilizationQueryHandler(s.db).
		Handle(s.T().Context(), queries.NewGetFleetUtilizationQuery(ptr(s.zone.ID())))

	s.Require().NoError(err)
	s.Require().Len(fleet, 1)
	s.True(fleet[0].VehicleID.IsEqual(s.truck.ID()))
}

func TestQueries_NotConstructed(t *testing.T) {
	_, err := queries.GetShipmentQueryHandler{}.Handle(t.Context(), queries.GetShipmentQuery{})
	require.ErrorIs(t, err, queries.ErrGetShipmentQueryIsNotConstructed)

	_, err = queries.GetFleetUtilizationQueryHandler{}.Handle(t.Context(), queries.GetFleetUtilizationQuery{})
	require.ErrorIs(t, err, queries.ErrGetFleetUtilizationQueryIsNotConstructed)

	_, err = queries.NewGetShipmentByTrackingNumberQuery("  ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func (s *QueriesTestSuite) point(lat, lng float64) kernel.Point {
	p, err := kernel.NewPoint(lat, lng)
	s.Require().NoError(err)
	return p
}

func (s *QueriesTestSuite) load(weight, volume float64) kernel.Load {
	l, err := kernel.NewLoadFromFloat(weight, volume)
	s.Require().NoError(err)
	return l
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
