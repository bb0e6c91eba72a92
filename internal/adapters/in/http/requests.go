package http

import (
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

type endpointRequest struct {
	Address string   `json:"address" validate:"required"`
	Lat     *float64 `json:"lat" validate:"required_with=Lng,omitempty,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" validate:"required_with=Lat,omitempty,gte=-180,lte=180"`
	Contact string   `json:"contact"`
	Phone   string   `json:"phone"`
}

func (r endpointRequest) toEndpoint() (shipment.Endpoint, error) {
	var point *kernel.Point
	if r.Lat != nil && r.Lng != nil {
		p, err := kernel.NewPoint(*r.Lat, *r.Lng)
		if err != nil {
			return shipment.Endpoint{}, err
		}
		point = &p
	}
	return shipment.NewEndpoint(r.Address, point, r.Contact, r.Phone)
}

type createShipmentRequest struct {
	Pickup      endpointRequest `json:"pickup"`
	Drop        endpointRequest `json:"drop"`
	WeightKg    float64         `json:"weight_kg" validate:"gt=0"`
	VolumeM3    float64         `json:"volume_m3" validate:"gte=0"`
	Description string          `json:"description" validate:"max=1000"`
}

type dispatchRequest struct {
	VehicleID *string `json:"vehicle_id" validate:"omitempty,uuid"`
	DriverID  *string `json:"driver_id" validate:"omitempty,uuid"`
}

type assignRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
	DriverID  string `json:"driver_id" validate:"required,uuid"`
}

// receiptRequest carries proof of delivery. Confirmation flags are not
// accepted from clients: the driver confirms by delivering and the receiver
// by confirming the shipment.
type receiptRequest struct {
	ReceiverName  string `json:"receiver_name" validate:"required"`
	ReceiverPhone string `json:"receiver_phone"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url"`
	Notes         string `json:"notes"`
}

func (r *receiptRequest) toReceipt() *shipment.DeliveryReceipt {
	if r == nil {
		return nil
	}
	return &shipment.DeliveryReceipt{
		ReceiverName:  r.ReceiverName,
		ReceiverPhone: r.ReceiverPhone,
		PhotoURL:      r.PhotoURL,
		Notes:         r.Notes,
	}
}

type advanceStatusRequest struct {
	Status  string          `json:"status" validate:"required"`
	Note    string          `json:"note" validate:"max=500"`
	Receipt *receiptRequest `json:"receipt"`
}

// optionalUUID parses a validated, possibly absent id.
func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// updateVehicleRequest edits a vehicle. Absent fields are left alone; an
// empty zone_id or default_driver_id clears the reference.
type updateVehicleRequest struct {
	Status          *string `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE INACTIVE"`
	ZoneID          *string `json:"zone_id" validate:"omitempty,len=0|uuid"`
	DefaultDriverID *string `json:"default_driver_id" validate:"omitempty,len=0|uuid"`
}

type updateZoneRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// referenceChange maps an optional JSON id onto a command reference change.
func referenceChange(raw *string) (commands.ReferenceChange, error) {
	switch {
	case raw == nil:
		return commands.Keep, nil
	case *raw == "":
		return commands.Clear(), nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return commands.ReferenceChange{}, err
	}
	return commands.SetTo(id), nil
}
