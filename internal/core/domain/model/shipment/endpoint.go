package shipment

import (
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Endpoint is a pickup or drop location.
type Endpoint struct {
	address string
	point   *kernel.Point
	contact string
	phone   string
}

// NewEndpoint requires an address; coordinates are optional.
func NewEndpoint(address string, point *kernel.Point, contact, phone string) (Endpoint, error) {
	if strings.TrimSpace(address) == "" {
		return Endpoint{}, errs.NewValueIsRequiredError("address")
	}
	var p *kernel.Point
	if point != nil {
		copied := *point
		p = &copied
	}
	return Endpoint{address: address, point: p, contact: contact, phone: phone}, nil
}

func (e Endpoint) Address() string { return e.address }
func (e Endpoint) Contact() string { return e.contact }
func (e Endpoint) Phone() string   { return e.phone }

// Point returns the coordinates and whether they are known.
func (e Endpoint) Point() (kernel.Point, bool) {
	if e.point == nil {
		return kernel.Point{}, false
	}
	return *e.point, true
}
