package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/zone"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneMatcher_Match(t *testing.T) {
	central := centralZone(t)
	matcher := services.NewZoneMatcher()

	got := matcher.Match(point(t, 13.0, 77.6), []*zone.Zone{central})
	require.NotNil(t, got)
	assert.True(t, central.ID().IsEqual(got.ID()))

	assert.Nil(t, matcher.Match(point(t, 20.0, 90.0), []*zone.Zone{central}))
	assert.Nil(t, matcher.Match(point(t, 13.0, 77.6), nil))
}

func TestZoneMatcher_FirstSuppliedOverlapWins(t *testing.T) {
	big := newZone(t, "Metro",
		point(t, 12.0, 77.0), point(t, 12.0, 78.0), point(t, 14.0, 78.0), point(t, 14.0, 77.0))
	small := centralZone(t)
	p := point(t, 13.0, 77.6)
	matcher := services.NewZoneMatcher()

	assert.Equal(t, "Metro", matcher.Match(p, []*zone.Zone{big, small}).Name())
	assert.Equal(t, "Central", matcher.Match(p, []*zone.Zone{small, big}).Name())
}

func TestZoneMatcher_SkipsInactiveZones(t *testing.T) {
	inactive := centralZone(t)
	inactive.Deactivate()
	active := newZone(t, "Metro",
		point(t, 12.0, 77.0), point(t, 12.0, 78.0), point(t, 14.0, 78.0), point(t, 14.0, 77.0))

	got := services.NewZoneMatcher().Match(point(t, 13.0, 77.6), []*zone.Zone{inactive, active})

	require.NotNil(t, got)
	assert.Equal(t, "Metro", got.Name())
}

func TestZoneMatcher_MatchPickup(t *testing.T) {
	central := centralZone(t)
	matcher := services.NewZoneMatcher()
	inside := point(t, 13.0, 77.6)

	zoneID := matcher.MatchPickup(newShipment(t, 1, 1, &inside), []*zone.Zone{central})
	require.NotNil(t, zoneID)
	assert.True(t, central.ID().IsEqual(*zoneID))

	assert.Nil(t, matcher.MatchPickup(newShipment(t, 1, 1, nil), []*zone.Zone{central}),
		"no coordinates leaves the zone unset")
}
