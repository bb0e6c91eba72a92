package postgres_test

import (
	"testing"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVehicle(t *testing.T, plate string) *vehicle.Vehicle {
	t.Helper()
	capacity, err := kernel.NewLoadFromFloat(5000, 25)
	require.NoError(t, err)
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "Truck "+plate, plate, vehicle.Truck, capacity)
	require.NoError(t, err)
	return v
}

func TestGormUnitOfWork_TracksWritesUntilCommit(t *testing.T) {
	factory := postgres_adapter.NewGormUnitOfWorkFactory(pgtest.NewSQLite(t))
	uow := factory.Create().(*postgres_adapter.GormUnitOfWork)
	require.NoError(t, uow.Begin(t.Context()))

	v := newTestVehicle(t, "KA01AB1234")
	driver, err := user.NewUser(kernel.NewUUID(), "Suresh", "", "", user.Driver, true)
	require.NoError(t, err)

	require.NoError(t, uow.VehicleRepository().Add(t.Context(), v))
	require.NoError(t, uow.UserRepository().Add(t.Context(), driver))
	locked, err := uow.VehicleRepository().GetForUpdate(t.Context(), v.ID())
	require.NoError(t, err)
	require.NoError(t, locked.SetManualStatus(vehicle.Maintenance))
	require.NoError(t, uow.VehicleRepository().Update(t.Context(), locked))

	ids := uow.TrackedIDs()
	require.Len(t, ids, 3)
	assert.True(t, ids[0].IsEqual(v.ID()))
	assert.True(t, ids[1].IsEqual(driver.ID()))
	assert.True(t, ids[2].IsEqual(v.ID()))

	require.NoError(t, uow.Commit(t.Context()))
	assert.Empty(t, uow.TrackedIDs())

	stored, err := factory.Create().VehicleRepository().Get(t.Context(), v.ID())
	require.NoError(t, err)
	assert.Equal(t, vehicle.Maintenance, stored.Status())
}

func TestGormUnitOfWork_RollbackDiscardsWritesAndTracking(t *testing.T) {
	factory := postgres_adapter.NewGormUnitOfWorkFactory(pgtest.NewSQLite(t))
	uow := factory.Create().(*postgres_adapter.GormUnitOfWork)
	require.NoError(t, uow.Begin(t.Context()))

	v := newTestVehicle(t, "KA01AB1234")
	require.NoError(t, uow.VehicleRepository().Add(t.Context(), v))
	require.Len(t, uow.TrackedIDs(), 1)

	require.NoError(t, uow.Rollback(t.Context()))

	assert.Empty(t, uow.TrackedIDs())
	_, err := factory.Create().VehicleRepository().Get(t.Context(), v.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormUnitOfWork_FailedWriteIsNotTracked(t *testing.T) {
	factory := postgres_adapter.NewGormUnitOfWorkFactory(pgtest.NewSQLite(t))
	v := newTestVehicle(t, "KA01AB1234")
	require.NoError(t, factory.Create().VehicleRepository().Add(t.Context(), v))

	uow := factory.Create().(*postgres_adapter.GormUnitOfWork)
	require.NoError(t, uow.Begin(t.Context()))
	defer func() { _ = uow.Rollback(t.Context()) }()

	stale, err := uow.VehicleRepository().Get(t.Context(), v.ID())
	require.NoError(t, err)
	fresh, err := uow.VehicleRepository().GetForUpdate(t.Context(), v.ID())
	require.NoError(t, err)
	require.NoError(t, uow.VehicleRepository().Update(t.Context(), fresh))

	err = uow.VehicleRepository().Update(t.Context(), stale)

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	ids := uow.TrackedIDs()
	require.Len(t, ids, 1)
	assert.True(t, ids[0].IsEqual(v.ID()))
}
