package services

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/zone"
)

// ZoneMatcher resolves coordinates to zones.
//
// Overlapping zones are resolved by supply order: the first active zone whose
// polygon contains the point wins. No area or priority tie-breaking is applied.
type ZoneMatcher struct{}

// NewZoneMatcher returns the stateless matcher. The zero value works too.
func NewZoneMatcher() ZoneMatcher {
	return ZoneMatcher{}
}

// Match returns the first active zone containing p, or nil.
func (ZoneMatcher) Match(p kernel.Point, zones []*zone.Zone) *zone.Zone {
	for _, z := range zones {
		if z != nil && z.Contains(p) {
			return z
		}
	}
	return nil
}

// MatchPickup resolves the shipment's pickup coordinate. A shipment without
// coordinates, or one outside every zone, yields nil; neither is an error.
func (m ZoneMatcher) MatchPickup(s *shipment.Shipment, zones []*zone.Zone) *kernel.UUID {
	p, ok := s.Pickup().Point()
	if !ok {
		return nil
	}
	z := m.Match(p, zones)
	if z == nil {
		return nil
	}
	id := z.ID()
	return &id
}
