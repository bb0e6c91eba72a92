package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

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

func newZone(t *testing.T, name string, ring ...kernel.Point) *zone.Zone {
	t.Helper()
	z, err := zone.NewZone(kernel.NewUUID(), name, "", kernel.NewPolygon(ring))
	require.NoError(t, err)
	return z
}

func centralZone(t *testing.T) *zone.Zone {
	return newZone(t, "Central",
		point(t, 12.9, 77.5), point(t, 12.9, 77.7), point(t, 13.1, 77.7), point(t, 13.1, 77.5))
}

func newVehicle(t *testing.T, plate string, weight, volume float64, zoneID *kernel.UUID) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), plate, plate, vehicle.Truck, load(t, weight, volume))
	require.NoError(t, err)
	v.AssignZone(zoneID)
	return v
}

func newDriver(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), name, "", "", user.Driver, true)
	require.NoError(t, err)
	return u
}

func newShipment(t *testing.T, weight, volume float64, pickup *kernel.Point) *shipment.Shipment {
	t.Helper()
	from, err := shipment.NewEndpoint("Warehouse 4", pickup, "", "")
	require.NoError(t, err)
	to, err := shipment.NewEndpoint("Store 9", nil, "", "")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), from, to, load(t, weight, volume), "", now)
	require.NoError(t, err)
	return s
}
