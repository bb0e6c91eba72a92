package services_test

import (
	"bytes"
	"testing"

	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnomalyObserver struct{ mock.Mock }

func (m *MockAnomalyObserver) IncLedgerAnomaly() {
	m.Called()
}

func TestCapacityLedger_ReserveReleaseRoundTrip(t *testing.T) {
	ledger := services.NewCapacityLedger(zerolog.Nop(), nil)
	v := newVehicle(t, "KA01", 5000, 25, nil)
	before := v.Used()

	require.True(t, ledger.IsAvailable(v, load(t, 500, 5)))
	require.NoError(t, ledger.Reserve(v, load(t, 500, 5)))
	assert.True(t, v.Used().Equal(load(t, 500, 5)))

	ledger.Release(v, load(t, 500, 5))
	assert.True(t, v.Used().Equal(before))
}

func TestCapacityLedger_ReserveOverflow(t *testing.T) {
	ledger := services.NewCapacityLedger(zerolog.Nop(), nil)
	v := newVehicle(t, "KA01", 5000, 25, nil)
	require.NoError(t, ledger.Reserve(v, load(t, 5000, 25)))

	assert.False(t, ledger.IsAvailable(v, load(t, 1, 0)))
	require.ErrorIs(t, ledger.Reserve(v, load(t, 1, 0)), vehicle.ErrCapacityExceeded)
}

func TestCapacityLedger_ClampedReleaseIsReported(t *testing.T) {
	var buf bytes.Buffer
	observer := new(MockAnomalyObserver)
	observer.On("IncLedgerAnomaly").Return().Once()
	ledger := services.NewCapacityLedger(zerolog.New(&buf), observer)
	v := newVehicle(t, "KA01", 100, 1, nil)

	ledger.Release(v, load(t, 10, 0.5))

	assert.True(t, v.Used().IsZero())
	assert.Contains(t, buf.String(), "capacity release clamped at zero")
	assert.Contains(t, buf.String(), `"component":"capacity_ledger"`)
	observer.AssertExpectations(t)
}

func TestCapacityLedger_NormalReleaseIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	observer := new(MockAnomalyObserver)
	ledger := services.NewCapacityLedger(zerolog.New(&buf), observer)
	v := newVehicle(t, "KA01", 100, 1, nil)
	require.NoError(t, ledger.Reserve(v, load(t, 10, 0.5)))

	ledger.Release(v, load(t, 10, 0.5))

	assert.Empty(t, buf.String())
	observer.AssertNotCalled(t, "IncLedgerAnomaly")
}

func TestCapacityLedger_CancelRestoresStatus(t *testing.T) {
	ledger := services.NewCapacityLedger(zerolog.Nop(), nil)
	v := newVehicle(t, "KA01", 5000, 25, nil)
	previous := v.Status()
	require.NoError(t, ledger.Reserve(v, load(t, 500, 5)))
	require.Equal(t, vehicle.OnTrip, v.Status())

	ledger.Cancel(v, load(t, 500, 5), previous)

	assert.True(t, v.Used().IsZero())
	assert.Equal(t, vehicle.Available, v.Status())
}
