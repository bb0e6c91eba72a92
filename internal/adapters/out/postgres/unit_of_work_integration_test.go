package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type uowFactory struct{ f *postgres_adapter.GormUnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type lifecycleFactory struct{ f *postgres_adapter.GormUnitOfWorkFactory }

func (u lifecycleFactory) Create() commands.LifecycleUoW { return u.f.Create() }

// UnitOfWorkIntegrationTestSuite runs the unit of work and the dispatch
// handlers against a real PostgreSQL, where row locks actually apply.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("logistics"),
		postgres.WithUsername("logistics"),
		postgres.WithPassword("logistics"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(ctx, postgres_adapter.Options{
		Driver:       postgres_adapter.DriverPostgres,
		DSN:          dsn,
		MaxOpenConns: 10,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipment_timeline, shipments, vehicles, zones, users, notifications, system_alerts").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = postgres_adapter.Close(suite.db)
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWritesAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	driver := suite.newDriver("Suresh")
	truck := suite.newVehicle("KA01AB1234", 1000)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, driver))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, truck))
	_, err := uow.VehicleRepository().Get(ctx, truck.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.VehicleRepository().Get(ctx, truck.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.UserRepository().Get(ctx, driver.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionsAreIsolated() {
	ctx := context.Background()
	first, second := suite.factory.Create(), suite.factory.Create()
	truck := suite.newVehicle("KA01AB1234", 1000)

	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	suite.Require().NoError(first.VehicleRepository().Add(ctx, truck))

	_, err := second.VehicleRepository().Get(ctx, truck.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(first.Commit(ctx))
	suite.Require().NoError(second.Rollback(ctx))

	_, err = suite.factory.Create().VehicleRepository().Get(ctx, truck.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStaleVehicleUpdateIsRejected() {
	ctx := context.Background()
	truck := suite.newVehicle("KA01AB1234", 1000)
	suite.Require().NoError(suite.factory.Create().VehicleRepository().Add(ctx, truck))

	repo := suite.factory.Create().VehicleRepository()
	a, err := repo.Get(ctx, truck.ID())
	suite.Require().NoError(err)
	b, err := repo.Get(ctx, truck.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.Reserve(suite.load(100)))
	suite.Require().NoError(repo.Update(ctx, a))
	suite.Require().NoError(b.Reserve(suite.load(200)))

	err = repo.Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDispatchNeverOverbooks() {
	ctx := context.Background()
	repos := suite.factory.Create()
	suite.Require().NoError(repos.UserRepository().Add(ctx, suite.newDriver("Suresh")))
	suite.Require().NoError(repos.UserRepository().Add(ctx, suite.newDriver("Mani")))
	truck := suite.newVehicle("KA01AB1234", 1000)
	suite.Require().NoError(repos.VehicleRepository().Add(ctx, truck))

	sender := kernel.NewUUID()
	first, second := suite.newShipment(sender, 600), suite.newShipment(sender, 600)
	suite.Require().NoError(repos.ShipmentRepository().Add(ctx, first))
	suite.Require().NoError(repos.ShipmentRepository().Add(ctx, second))

	handler := suite.dispatchHandler()
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, s := range []*shipment.Shipment{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewDispatchShipmentCommand(s.ID(), nil, nil, nil)
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, services.ErrNoCapacityAvailable):
			rejected++
		default:
			suite.Failf("unexpected dispatch error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, rejected)

	got, err := suite.factory.Create().VehicleRepository().Get(ctx, truck.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(600).Equal(got.Used().Weight()), got.Used().String())
	suite.Equal(vehicle.OnTrip, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentTransitionsApplyOnce() {
	ctx := context.Background()
	repos := suite.factory.Create()
	driver := suite.newDriver("Suresh")
	suite.Require().NoError(repos.UserRepository().Add(ctx, driver))
	truck := suite.newVehicle("KA01AB1234", 1000)
	suite.Require().NoError(repos.VehicleRepository().Add(ctx, truck))
	s := suite.newShipment(kernel.NewUUID(), 100)
	suite.Require().NoError(repos.ShipmentRepository().Add(ctx, s))

	cmd, err := commands.NewDispatchShipmentCommand(s.ID(), nil, nil, nil)
	suite.Require().NoError(err)
	_, err = suite.dispatchHandler().Handle(ctx, cmd)
	suite.Require().NoError(err)

	advance := commands.NewAdvanceStatusCommandHandler(lifecycleFactory{suite.factory}, suite.dispatcher(), nil, nil, zerolog.Nop())
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAdvanceStatusCommand(s.ID(), shipment.PickedUp, ptr(driver.ID()), "", nil)
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = advance.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, shipment.ErrInvalidTransition):
			rejected++
		default:
			suite.Failf("unexpected transition error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, rejected)

	entries, err := suite.factory.Create().TimelineRepository().ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) dispatcher() services.ShipmentDispatcher {
	return services.NewShipmentDispatcher(services.NewCapacityLedger(zerolog.Nop(), nil))
}

func (suite *UnitOfWorkIntegrationTestSuite) dispatchHandler() commands.DispatchShipmentCommandHandler {
	return commands.NewDispatchShipmentCommandHandler(uowFactory{suite.factory}, suite.dispatcher(), nil, nil, nil, zerolog.Nop())
}

func (suite *UnitOfWorkIntegrationTestSuite) load(weight float64) kernel.Load {
	l, err := kernel.NewLoadFromFloat(weight, 1)
	suite.Require().NoError(err)
	return l
}

func (suite *UnitOfWorkIntegrationTestSuite) newDriver(name string) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), name, "", "", user.Driver, true)
	suite.Require().NoError(err)
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) newVehicle(plate string, weight float64) *vehicle.Vehicle {
	capacity, err := kernel.NewLoadFromFloat(weight, 20)
	suite.Require().NoError(err)
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "Truck "+plate, plate, vehicle.Truck, capacity)
	suite.Require().NoError(err)
	return v
}

func (suite *UnitOfWorkIntegrationTestSuite) newShipment(senderID kernel.UUID, weight float64) *shipment.Shipment {
	from, err := shipment.NewEndpoint("12 MG Road", nil, "", "")
	suite.Require().NoError(err)
	to, err := shipment.NewEndpoint("4 Residency Road", nil, "", "")
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), senderID, from, to, suite.load(weight), "", time.Now().UTC())
	suite.Require().NoError(err)
	return s
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
