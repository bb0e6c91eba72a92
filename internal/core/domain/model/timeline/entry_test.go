package timeline_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := shipment.TransitionEvent{ShipmentID: kernel.NewUUID(), From: shipment.Assigned, To: shipment.PickedUp, At: at}
	actor := kernel.NewUUID()

	entry := timeline.FromEvent(event, &actor, "Picked up by driver")

	require.NoError(t, entry.ID().Validate())
	assert.True(t, entry.ShipmentID().IsEqual(event.ShipmentID))
	assert.Equal(t, shipment.PickedUp, entry.Status())
	assert.Equal(t, "Picked up by driver", entry.Note())
	assert.Equal(t, at, entry.At())
	require.NotNil(t, entry.ActorID())
	assert.True(t, actor.IsEqual(*entry.ActorID()))

	actor = kernel.NewUUID()
	assert.False(t, actor.IsEqual(*entry.ActorID()), "entry keeps its own copy of the actor")
}
