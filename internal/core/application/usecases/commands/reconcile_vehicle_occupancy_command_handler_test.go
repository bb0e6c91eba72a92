package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileVehicleOccupancyCommandHandler(t *testing.T) {
	f := newFixture(t)
	stale := f.vehicle("KA01STALE01", 5000, 25, func(v *vehicle.Vehicle) {
		require.NoError(t, v.Reserve(load(t, 100, 1)))
	})
	parked := f.vehicle("KA01PARK001", 5000, 25, func(v *vehicle.Vehicle) {
		require.NoError(t, v.SetManualStatus(vehicle.Inactive))
	})
	busy := f.vehicle("KA01BUSY001", 5000, 25)
	f.driver("Suresh")
	_, err := f.dispatch(f.shipment(500, 5, nil), idPtr(busy.ID()), nil)
	require.NoError(t, err)
	require.Equal(t, vehicle.OnTrip, f.reloadVehicle(stale.ID()).Status())

	changed, err := f.reconcileHandler().Handle(t.Context(), commands.NewReconcileVehicleOccupancyCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, vehicle.Available, f.reloadVehicle(stale.ID()).Status())
	assert.True(t, f.reloadVehicle(stale.ID()).Used().Equal(load(t, 100, 1)), "usage is not rewritten")
	assert.Equal(t, vehicle.Inactive, f.reloadVehicle(parked.ID()).Status())
	assert.Equal(t, vehicle.OnTrip, f.reloadVehicle(busy.ID()).Status())

	changed, err = f.reconcileHandler().Handle(t.Context(), commands.NewReconcileVehicleOccupancyCommand())
	require.NoError(t, err)
	assert.Zero(t, changed)
}
