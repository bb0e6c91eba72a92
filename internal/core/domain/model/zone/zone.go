// Package zone models the geographic service areas used to prefer local vehicles.
package zone

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultColor is used when a zone is stored without a map color.
const DefaultColor = "#1890ff"

// ErrZoneIsNotConstructed is returned by Validate on a zero-value Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone or RestoreZone")

// Status controls whether a zone takes part in matching.
type Status int

const (
	UnknownStatus Status = iota
	Active
	Inactive
)

func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Inactive:
		return "INACTIVE"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus accepts ACTIVE or INACTIVE, case-insensitively.
func ParseStatus(value string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ACTIVE":
		return Active, nil
	case "INACTIVE":
		return Inactive, nil
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("zone_status", fmt.Errorf("%q is not a zone status", value))
	}
}

// Zone is a named polygon. Zones may overlap.
type Zone struct {
	id          kernel.UUID
	name        string
	description string
	area        kernel.Polygon
	color       string
	status      Status

	guard guard.ConstructorGuard
}

// NewZone creates an ACTIVE zone. The boundary needs at least three vertices.
func NewZone(id kernel.UUID, name, description string, area kernel.Polygon) (*Zone, error) {
	return RestoreZone(id, name, description, area, DefaultColor, Active)
}

// RestoreZone rebuilds a zone from storage.
//
// Parameters:
//   - id: zone identifier
//   - name: display name, required
//   - description: free text, may be empty
//   - area: boundary with at least three vertices
//   - color: map color; empty selects DefaultColor
//   - status: Active or Inactive
//
// Returns:
//   - *Zone: the restored zone
//   - error: every validation failure, joined
func RestoreZone(id kernel.UUID, name, description string, area kernel.Polygon, color string, status Status) (*Zone, error) {
	var idErr, nameErr, areaErr, statusErr error
	if err := id.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if area.IsDegenerate() {
		areaErr = errs.NewValueIsInvalidErrorWithCause("area", fmt.Errorf("%d vertices, need at least 3", len(area.Vertices())))
	}
	if status != Active && status != Inactive {
		statusErr = errs.NewValueIsInvalidError("zone_status")
	}
	if err := errors.Join(idErr, nameErr, areaErr, statusErr); err != nil {
		return nil, err
	}
	if color == "" {
		color = DefaultColor
	}

	return &Zone{
		id:          id,
		name:        name,
		description: description,
		area:        area,
		color:       color,
		status:      status,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate fails for zones not built through a constructor.
func (z *Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// Contains reports whether an active zone's polygon contains p.
func (z *Zone) Contains(p kernel.Point) bool {
	return z.status == Active && z.area.Contains(p)
}

// Deactivate drops the zone out of matching.
func (z *Zone) Deactivate() {
	z.status = Inactive
}

// Activate returns the zone to matching.
func (z *Zone) Activate() {
	z.status = Active
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Name returns the display name.
func (z *Zone) Name() string {
	return z.name
}

// Description returns the free-text description.
func (z *Zone) Description() string {
	return z.description
}

// Area returns the boundary polygon.
func (z *Zone) Area() kernel.Polygon {
	return z.area
}

// Color returns the map color, DefaultColor unless set.
func (z *Zone) Color() string {
	return z.color
}

// Status reports whether the zone takes part in matching.
func (z *Zone) Status() Status {
	return z.status
}
