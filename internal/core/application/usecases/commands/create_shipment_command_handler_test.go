package commands_test

import (
	"strings"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler(t *testing.T) {
	f := newFixture(t)
	pickup := point(t, 12.97, 77.59)

	s := f.shipment(250.5, 1.75, &pickup)

	assert.True(t, strings.HasPrefix(s.TrackingNumber(), "SHP-"))
	assert.Len(t, s.TrackingNumber(), len("SHP-")+10)

	stored := f.reloadShipment(s.ID())
	assert.Equal(t, shipment.Pending, stored.Status())
	assert.Equal(t, s.TrackingNumber(), stored.TrackingNumber())
	assert.True(t, stored.Load().Equal(load(t, 250.5, 1.75)))
	assert.True(t, stored.SenderID().IsEqual(f.sender.ID()))
	assert.False(t, stored.CapacityHeld())
	assert.Nil(t, stored.VehicleID())

	storedPickup, ok := stored.Pickup().Point()
	require.True(t, ok)
	assert.InDelta(t, 12.97, storedPickup.Lat(), 1e-9)
	assert.InDelta(t, 77.59, storedPickup.Lng(), 1e-9)
	_, ok = stored.Drop().Point()
	assert.False(t, ok)

	entries := f.timeline(s.ID())
	require.Len(t, entries, 1)
	assert.Equal(t, shipment.Pending, entries[0].Status())
	assert.Equal(t, "Shipment created", entries[0].Note())
	assert.True(t, entries[0].ActorID().IsEqual(f.sender.ID()))
}

func TestNewCreateShipmentCommand_Validation(t *testing.T) {
	to, err := shipment.NewEndpoint("4 Residency Road", nil, "", "")
	require.NoError(t, err)

	_, err = commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.UUID{}, shipment.Endpoint{}, to, kernel.ZeroLoad, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateShipmentCommandHandler_NotConstructedCommand(t *testing.T) {
	f := newFixture(t)

	_, err := f.createHandler().Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
}
