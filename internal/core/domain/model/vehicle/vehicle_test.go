package vehicle_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, weight, volume float64) kernel.Load {
	t.Helper()
	l, err := kernel.NewLoadFromFloat(weight, volume)
	require.NoError(t, err)
	return l
}

func newTruck(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "Tata 407", "ka-01-ab-1234", vehicle.Truck, load(t, 5000, 25))
	require.NoError(t, err)
	return v
}

func TestNewVehicle(t *testing.T) {
	v := newTruck(t)

	assert.Equal(t, "KA-01-AB-1234", v.Plate())
	assert.Equal(t, vehicle.Available, v.Status())
	assert.True(t, v.Used().IsZero())
	assert.True(t, v.Remaining().Equal(load(t, 5000, 25)))
	require.NoError(t, v.Validate())
}

func TestNewVehicle_Invalid(t *testing.T) {
	_, err := vehicle.NewVehicle(kernel.NewUUID(), "x", " ", vehicle.Type("BIKE"), kernel.ZeroLoad)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "BIKE")
}

func TestVehicle_ReserveAndRelease(t *testing.T) {
	v := newTruck(t)
	shipmentLoad := load(t, 500, 5)

	require.NoError(t, v.Reserve(shipmentLoad))
	assert.True(t, v.Used().Equal(shipmentLoad))
	assert.Equal(t, vehicle.OnTrip, v.Status())

	clamped := v.Release(shipmentLoad)
	assert.False(t, clamped)
	assert.True(t, v.Used().IsZero(), "round trip restores usage")
}

func TestVehicle_CancelReservation(t *testing.T) {
	v := newTruck(t)
	require.NoError(t, v.Reserve(load(t, 100, 1)))
	require.NoError(t, v.Reserve(load(t, 500, 5)))

	clamped := v.CancelReservation(load(t, 500, 5), vehicle.OnTrip)

	assert.False(t, clamped)
	assert.True(t, v.Used().Equal(load(t, 100, 1)))
	assert.Equal(t, vehicle.OnTrip, v.Status())

	fresh := newTruck(t)
	require.NoError(t, fresh.Reserve(load(t, 500, 5)))
	fresh.CancelReservation(load(t, 500, 5), vehicle.Available)
	assert.True(t, fresh.Used().IsZero())
	assert.Equal(t, vehicle.Available, fresh.Status())
}

func TestVehicle_ReserveRejectsOverflow(t *testing.T) {
	v := newTruck(t)
	require.NoError(t, v.Reserve(load(t, 5000, 25)))

	err := v.Reserve(load(t, 1, 0))

	var capErr *vehicle.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	require.ErrorIs(t, err, vehicle.ErrCapacityExceeded)
	assert.True(t, capErr.Remaining.IsZero())
	assert.Contains(t, err.Error(), "Remaining: 0kg / 0m³")
	assert.True(t, v.Used().Equal(load(t, 5000, 25)), "usage unchanged")
}

func TestVehicle_VolumeAloneCanExceed(t *testing.T) {
	v := newTruck(t)

	assert.False(t, v.CanCarry(load(t, 1, 25.5)))
	assert.True(t, v.CanCarry(load(t, 5000, 25)))
}

func TestVehicle_ReleaseClampsAtZero(t *testing.T) {
	v := newTruck(t)
	require.NoError(t, v.Reserve(load(t, 100, 1)))

	clamped := v.Release(load(t, 300, 1))

	assert.True(t, clamped)
	assert.True(t, v.Used().IsZero())
	require.NoError(t, v.Validate())
}

func TestVehicle_RefreshOccupancy(t *testing.T) {
	v := newTruck(t)
	require.NoError(t, v.Reserve(load(t, 10, 1)))

	v.RefreshOccupancy(2)
	assert.Equal(t, vehicle.OnTrip, v.Status())

	v.RefreshOccupancy(0)
	assert.Equal(t, vehicle.Available, v.Status())

	require.NoError(t, v.SetManualStatus(vehicle.Maintenance))
	v.RefreshOccupancy(0)
	assert.Equal(t, vehicle.Maintenance, v.Status(), "manual status is sticky")
	assert.False(t, v.IsDispatchable())

	require.NoError(t, v.Reserve(load(t, 1, 0)))
	assert.Equal(t, vehicle.Maintenance, v.Status())
}

func TestVehicle_SetManualStatusRejectsOnTrip(t *testing.T) {
	v := newTruck(t)
	require.ErrorIs(t, v.SetManualStatus(vehicle.OnTrip), errs.ErrValueIsInvalid)
}

func TestRestoreVehicle_RejectsOverfullUsage(t *testing.T) {
	_, err := vehicle.RestoreVehicle(vehicle.Snapshot{
		ID:       kernel.NewUUID(),
		Plate:    "KA-01",
		Type:     vehicle.Van,
		Capacity: load(t, 10, 1),
		Used:     load(t, 11, 1),
		Status:   vehicle.OnTrip,
	})

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseStatus(t *testing.T) {
	s, err := vehicle.ParseStatus("on_trip")
	require.NoError(t, err)
	assert.Equal(t, vehicle.OnTrip, s)

	_, err = vehicle.ParseStatus("PARKED")
	require.Error(t, err)
}
