package http

import (
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
)

type healthResponse struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type loadResponse struct {
	WeightKg decimal.Decimal `json:"weight_kg"`
	VolumeM3 decimal.Decimal `json:"volume_m3"`
}

func newLoadResponse(l kernel.Load) loadResponse {
	return loadResponse{WeightKg: l.Weight(), VolumeM3: l.Volume()}
}

type createdShipmentResponse struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type assignmentResponse struct {
	ShipmentID     string       `json:"shipment_id"`
	TrackingNumber string       `json:"tracking_number"`
	Status         string       `json:"status"`
	VehicleID      string       `json:"vehicle_id"`
	Plate          string       `json:"plate"`
	DriverID       string       `json:"driver_id"`
	ZoneID         *string      `json:"zone_id,omitempty"`
	AssignedAt     time.Time    `json:"assigned_at"`
	Remaining      loadResponse `json:"remaining"`
}

func newAssignmentResponse(a commands.AssignedShipment) assignmentResponse {
	return assignmentResponse{
		ShipmentID:     a.ShipmentID.String(),
		TrackingNumber: a.TrackingNumber,
		Status:         a.Status.String(),
		VehicleID:      a.VehicleID.String(),
		Plate:          a.Plate,
		DriverID:       a.DriverID.String(),
		ZoneID:         idString(a.ZoneID),
		AssignedAt:     a.AssignedAt,
		Remaining:      newLoadResponse(a.Remaining),
	}
}

type statusResponse struct {
	ShipmentID     string     `json:"shipment_id"`
	TrackingNumber string     `json:"tracking_number"`
	Status         string     `json:"status"`
	PickedUpAt     *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
}

func newStatusResponse(s *shipment.Shipment) statusResponse {
	m := s.Milestones()
	return statusResponse{
		ShipmentID:     s.ID().String(),
		TrackingNumber: s.TrackingNumber(),
		Status:         s.Status().String(),
		PickedUpAt:     m.PickedUpAt,
		DeliveredAt:    m.DeliveredAt,
		ConfirmedAt:    m.ConfirmedAt,
	}
}

type releaseResponse struct {
	Released bool `json:"released"`
}

type timelineEntryResponse struct {
	Status  string    `json:"status"`
	ActorID *string   `json:"actor_id,omitempty"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

type shipmentResponse struct {
	ID             string                  `json:"id"`
	TrackingNumber string                  `json:"tracking_number"`
	Status         string                  `json:"status"`
	SenderID       string                  `json:"sender_id"`
	PickupAddress  string                  `json:"pickup_address"`
	DropAddress    string                  `json:"drop_address"`
	Load           loadResponse            `json:"load"`
	Description    string                  `json:"description,omitempty"`
	ZoneID         *string                 `json:"zone_id,omitempty"`
	ZoneName       string                  `json:"zone_name,omitempty"`
	VehicleID      *string                 `json:"vehicle_id,omitempty"`
	VehiclePlate   string                  `json:"vehicle_plate,omitempty"`
	DriverID       *string                 `json:"driver_id,omitempty"`
	DriverName     string                  `json:"driver_name,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	AssignedAt     *time.Time              `json:"assigned_at,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	Timeline       []timelineEntryResponse `json:"timeline"`
}

func newShipmentResponse(v queries.ShipmentView) shipmentResponse {
	timeline := make([]timelineEntryResponse, len(v.Timeline))
	for i, e := range v.Timeline {
		timeline[i] = timelineEntryResponse{Status: e.Status, ActorID: idString(e.ActorID), Note: e.Note, At: e.At}
	}
	return shipmentResponse{
		ID:             v.ID.String(),
		TrackingNumber: v.TrackingNumber,
		Status:         v.Status,
		SenderID:       v.SenderID.String(),
		PickupAddress:  v.PickupAddress,
		DropAddress:    v.DropAddress,
		Load:           loadResponse{WeightKg: v.Weight, VolumeM3: v.Volume},
		Description:    v.Description,
		ZoneID:         idString(v.ZoneID),
		ZoneName:       v.ZoneName,
		VehicleID:      idString(v.VehicleID),
		VehiclePlate:   v.VehiclePlate,
		DriverID:       idString(v.DriverID),
		DriverName:     v.DriverName,
		CreatedAt:      v.CreatedAt,
		AssignedAt:     v.AssignedAt,
		DeliveredAt:    v.DeliveredAt,
		Timeline:       timeline,
	}
}

type vehicleUtilizationResponse struct {
	VehicleID       string          `json:"vehicle_id"`
	Plate           string          `json:"plate"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	ZoneName        string          `json:"zone_name,omitempty"`
	Capacity        loadResponse    `json:"capacity"`
	Used            loadResponse    `json:"used"`
	WeightPercent   decimal.Decimal `json:"weight_percent"`
	VolumePercent   decimal.Decimal `json:"volume_percent"`
	ActiveShipments int64           `json:"active_shipments"`
}

func newVehicleUtilizationResponse(v queries.VehicleUtilization) vehicleUtilizationResponse {
	return vehicleUtilizationResponse{
		VehicleID:       v.VehicleID.String(),
		Plate:           v.Plate,
		Type:            v.Type,
		Status:          v.Status,
		ZoneName:        v.ZoneName,
		Capacity:        loadResponse{WeightKg: v.CapacityWeight, VolumeM3: v.CapacityVolume},
		Used:            loadResponse{WeightKg: v.UsedWeight, VolumeM3: v.UsedVolume},
		WeightPercent:   v.WeightPercent,
		VolumePercent:   v.VolumePercent,
		ActiveShipments: v.ActiveShipments,
	}
}

type vehicleResponse struct {
	ID              string       `json:"id"`
	Plate           string       `json:"plate"`
	Type            string       `json:"type"`
	Status          string       `json:"status"`
	ZoneID          *string      `json:"zone_id,omitempty"`
	DefaultDriverID *string      `json:"default_driver_id,omitempty"`
	Capacity        loadResponse `json:"capacity"`
	Used            loadResponse `json:"used"`
}

func newVehicleResponse(v *vehicle.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:              v.ID().String(),
		Plate:           v.Plate(),
		Type:            string(v.Type()),
		Status:          v.Status().String(),
		ZoneID:          idString(v.ZoneID()),
		DefaultDriverID: idString(v.DefaultDriverID()),
		Capacity:        newLoadResponse(v.Capacity()),
		Used:            newLoadResponse(v.Used()),
	}
}

type zoneResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func newZoneResponse(z *zone.Zone) zoneResponse {
	return zoneResponse{ID: z.ID().String(), Name: z.Name(), Status: z.Status().String()}
}

type notificationResponse struct {
	Kind    string    `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func newNotificationResponse(n ports.Notification) notificationResponse {
	return notificationResponse{Kind: string(n.Kind), Title: n.Title, Message: n.Message, At: n.At}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
