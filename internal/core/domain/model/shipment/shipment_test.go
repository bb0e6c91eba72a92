package shipment_test

import (
	"regexp"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newPendingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	pt, err := kernel.NewPoint(13.0, 77.6)
	require.NoError(t, err)
	pickup, err := shipment.NewEndpoint("12 MG Road", &pt, "Asha", "+91-900")
	require.NoError(t, err)
	drop, err := shipment.NewEndpoint("7 Residency Rd", nil, "Ravi", "+91-901")
	require.NoError(t, err)
	load, err := kernel.NewLoadFromFloat(500, 5)
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), pickup, drop, load, "pallets", baseTime)
	require.NoError(t, err)
	return s
}

func assignShipment(t *testing.T, s *shipment.Shipment) {
	t.Helper()
	_, err := s.Assign(kernel.NewUUID(), kernel.NewUUID(), nil, baseTime.Add(time.Minute))
	require.NoError(t, err)
}

func TestNewShipment(t *testing.T) {
	s := newPendingShipment(t)

	assert.Equal(t, shipment.Pending, s.Status())
	assert.Regexp(t, regexp.MustCompile(`^SHP-[0-9A-F]{10}$`), s.TrackingNumber())
	assert.Equal(t, baseTime, s.Milestones().CreatedAt)
	assert.Nil(t, s.Milestones().AssignedAt)
	assert.Nil(t, s.VehicleID())
	assert.False(t, s.CapacityHeld())
	require.NoError(t, s.Validate())
}

func TestNewShipment_RejectsInvalidInput(t *testing.T) {
	pickup, err := shipment.NewEndpoint("a", nil, "", "")
	require.NoError(t, err)
	load, err := kernel.NewLoadFromFloat(1, 1)
	require.NoError(t, err)

	_, err = shipment.NewShipment(kernel.UUID{}, kernel.UUID{}, pickup, pickup, kernel.ZeroLoad, "", baseTime)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "sender_id")
	assert.Contains(t, err.Error(), "load must not be empty")

	_, err = shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), pickup, shipment.Endpoint{}, load, "", baseTime)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = shipment.NewEndpoint("   ", nil, "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestShipment_Assign(t *testing.T) {
	s := newPendingShipment(t)
	vehicleID, driverID, zoneID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	at := baseTime.Add(time.Hour)

	event, err := s.Assign(vehicleID, driverID, &zoneID, at)

	require.NoError(t, err)
	assert.Equal(t, shipment.TransitionEvent{ShipmentID: s.ID(), From: shipment.Pending, To: shipment.Assigned, At: at}, event)
	assert.Equal(t, shipment.Assigned, s.Status())
	assert.True(t, vehicleID.IsEqual(*s.VehicleID()))
	assert.True(t, driverID.IsEqual(*s.DriverID()))
	assert.True(t, zoneID.IsEqual(*s.ZoneID()))
	assert.True(t, s.CapacityHeld())
	require.NotNil(t, s.Milestones().AssignedAt)
	assert.Equal(t, at, *s.Milestones().AssignedAt)
	require.NoError(t, s.Validate())
}

func TestShipment_AssignRequiresPending(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)

	_, err := s.Assign(kernel.NewUUID(), kernel.NewUUID(), nil, baseTime)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, shipment.Assigned, s.Status())
}

func TestShipment_TransitionToAssignedNeedsDispatch(t *testing.T) {
	s := newPendingShipment(t)

	_, err := s.Transition(shipment.Assigned, baseTime)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, shipment.Pending, s.Status())
}

func TestShipment_FullLifecycleStampsMilestones(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)

	_, err := s.Transition(shipment.PickedUp, baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = s.Transition(shipment.InTransit, baseTime.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = s.Deliver(shipment.DeliveryReceipt{ReceiverName: "Ravi"}, baseTime.Add(4*time.Hour))
	require.NoError(t, err)
	_, err = s.Transition(shipment.Confirmed, baseTime.Add(5*time.Hour))
	require.NoError(t, err)

	m := s.Milestones()
	require.NotNil(t, m.PickedUpAt)
	require.NotNil(t, m.InTransitAt)
	require.NotNil(t, m.DeliveredAt)
	require.NotNil(t, m.ConfirmedAt)
	assert.Equal(t, baseTime.Add(4*time.Hour), *m.DeliveredAt)

	receipt, ok := s.Receipt()
	require.True(t, ok)
	assert.True(t, receipt.DriverConfirmed)
	assert.True(t, receipt.ReceiverConfirmed)
	assert.True(t, s.Status().IsTerminal())
	require.NoError(t, s.Validate())
}

func TestShipment_RejectedTransitionLeavesStateUnchanged(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)
	before := s.Milestones()

	_, err := s.Transition(shipment.Delivered, baseTime.Add(time.Hour))

	require.ErrorIs(t, err, shipment.ErrInvalidTransition)
	assert.Equal(t, shipment.Assigned, s.Status())
	assert.Equal(t, before, s.Milestones())
}

func TestShipment_DeliverRequiresReceiverName(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)
	for _, target := range []shipment.Status{shipment.PickedUp, shipment.InTransit} {
		_, err := s.Transition(target, baseTime.Add(time.Hour))
		require.NoError(t, err)
	}

	_, err := s.Transition(shipment.Delivered, baseTime.Add(2*time.Hour))
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = s.Deliver(shipment.DeliveryReceipt{ReceiverName: "  "}, baseTime.Add(2*time.Hour))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.Equal(t, shipment.InTransit, s.Status())
	assert.Nil(t, s.Milestones().DeliveredAt)
	_, ok := s.Receipt()
	assert.False(t, ok)
}

func TestShipment_DeliverIgnoresReceiverConfirmation(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)
	for _, target := range []shipment.Status{shipment.PickedUp, shipment.InTransit} {
		_, err := s.Transition(target, baseTime.Add(time.Hour))
		require.NoError(t, err)
	}

	_, err := s.Deliver(shipment.DeliveryReceipt{ReceiverName: " Ravi ", ReceiverConfirmed: true}, baseTime.Add(2*time.Hour))
	require.NoError(t, err)

	receipt, ok := s.Receipt()
	require.True(t, ok)
	assert.Equal(t, "Ravi", receipt.ReceiverName)
	assert.True(t, receipt.DriverConfirmed)
	assert.False(t, receipt.ReceiverConfirmed)
}

func TestShipment_CancelAndReleaseReservation(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)

	_, err := s.ReleaseReservation()
	require.ErrorIs(t, err, errs.ErrInvalidState, "active shipments keep their reservation")

	_, err = s.Transition(shipment.Cancelled, baseTime.Add(time.Hour))
	require.NoError(t, err)

	released, err := s.ReleaseReservation()
	require.NoError(t, err)
	assert.True(t, released)

	released, err = s.ReleaseReservation()
	require.NoError(t, err)
	assert.False(t, released, "second release is a no-op")
	require.NoError(t, s.Validate())
}

func TestShipment_CannotCancelAfterPickup(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)
	_, err := s.Transition(shipment.PickedUp, baseTime.Add(time.Hour))
	require.NoError(t, err)

	_, err = s.Transition(shipment.Cancelled, baseTime.Add(2*time.Hour))

	require.ErrorIs(t, err, shipment.ErrInvalidTransition)
}

func TestRestoreShipment_ChecksMilestones(t *testing.T) {
	s := newPendingShipment(t)
	assignShipment(t, s)

	snap := shipment.Snapshot{
		ID:             s.ID(),
		TrackingNumber: s.TrackingNumber(),
		SenderID:       s.SenderID(),
		Pickup:         s.Pickup(),
		Drop:           s.Drop(),
		Load:           s.Load(),
		Status:         s.Status(),
		VehicleID:      s.VehicleID(),
		DriverID:       s.DriverID(),
		CapacityHeld:   true,
		Milestones:     s.Milestones(),
		Version:        4,
	}

	restored, err := shipment.RestoreShipment(snap)
	require.NoError(t, err)
	assert.Equal(t, 4, restored.Version())

	snap.Milestones.AssignedAt = nil
	_, err = shipment.RestoreShipment(snap)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	snap.Milestones = s.Milestones()
	snap.CapacityHeld = false
	_, err = shipment.RestoreShipment(snap)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestShipment_ZeroValueIsInvalid(t *testing.T) {
	var s shipment.Shipment
	require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
}
