package kernel

import (
	"logistics/internal/pkg/errs"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// Point is a WGS84 coordinate.
type Point struct {
	lat float64
	lng float64
}

// NewPoint validates latitude and longitude ranges.
func NewPoint(lat, lng float64) (Point, error) {
	if lat < minLatitude || lat > maxLatitude {
		return Point{}, errs.NewValueIsOutOfRangeError("lat", lat, minLatitude, maxLatitude)
	}
	if lng < minLongitude || lng > maxLongitude {
		return Point{}, errs.NewValueIsOutOfRangeError("lng", lng, minLongitude, maxLongitude)
	}
	return Point{lat: lat, lng: lng}, nil
}

func (p Point) Lat() float64 { return p.lat }
func (p Point) Lng() float64 { return p.lng }

// Polygon is a closed ring of vertices. The last vertex need not repeat the first.
type Polygon struct {
	ring []Point
}

// NewPolygon copies the ring. Rings with fewer than three vertices are
// accepted here but never contain any point; callers that require a usable
// area (zones) enforce the minimum themselves.
func NewPolygon(ring []Point) Polygon {
	return Polygon{ring: append([]Point(nil), ring...)}
}

// Vertices returns a copy of the ring.
func (p Polygon) Vertices() []Point {
	return append([]Point(nil), p.ring...)
}

// IsDegenerate reports rings that cannot enclose an area.
func (p Polygon) IsDegenerate() bool {
	return len(p.ring) < 3
}

// Contains runs the even-odd ray-casting test: a horizontal ray from the
// point crosses the boundary an odd number of times iff the point is inside.
// Points lying exactly on an edge or vertex may be classified either way.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.ring)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p.ring[i].lat, p.ring[i].lng
		xj, yj := p.ring[j].lat, p.ring[j].lng

		if (yi > pt.lng) != (yj > pt.lng) &&
			pt.lat < (xj-xi)*(pt.lng-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
