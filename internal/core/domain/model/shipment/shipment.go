package shipment

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned by Validate on a zero-value Shipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment is the aggregate root for a single consignment.
//
// Invariants:
//   - status changes only through the adjacency table in status.go
//   - vehicle and driver are both set while the shipment is active
//   - capacityHeld is true only while a vehicle reservation is outstanding
//   - milestones match the furthest stage reached
type Shipment struct {
	id             kernel.UUID
	trackingNumber string
	senderID       kernel.UUID
	pickup         Endpoint
	drop           Endpoint
	load           kernel.Load
	description    string

	status    Status
	zoneID    *kernel.UUID
	vehicleID *kernel.UUID
	driverID  *kernel.UUID

	// capacityHeld marks an outstanding reservation on vehicleID.
	capacityHeld bool

	milestones Milestones
	receipt    *DeliveryReceipt
	version    int

	guard guard.ConstructorGuard
}

// NewShipment creates a PENDING shipment with a fresh tracking number.
func NewShipment(
	id kernel.UUID,
	senderID kernel.UUID,
	pickup, drop Endpoint,
	load kernel.Load,
	description string,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		trackingNumber: NewTrackingNumber(),
		description:    description,
		status:         Pending,
		milestones:     Milestones{CreatedAt: now},
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setSender(senderID),
		s.setEndpoints(pickup, drop),
		s.setLoad(load),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries persisted state into RestoreShipment.
type Snapshot struct {
	ID             kernel.UUID
	TrackingNumber string
	SenderID       kernel.UUID
	Pickup         Endpoint
	Drop           Endpoint
	Load           kernel.Load
	Description    string
	Status         Status
	ZoneID         *kernel.UUID
	VehicleID      *kernel.UUID
	DriverID       *kernel.UUID
	CapacityHeld   bool
	Milestones     Milestones
	Receipt        *DeliveryReceipt
	Version        int
}

// RestoreShipment rebuilds an aggregate from storage and re-checks its invariants.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		trackingNumber: snap.TrackingNumber,
		description:    snap.Description,
		status:         snap.Status,
		zoneID:         snap.ZoneID,
		vehicleID:      snap.VehicleID,
		driverID:       snap.DriverID,
		capacityHeld:   snap.CapacityHeld,
		milestones:     snap.Milestones.clone(),
		version:        snap.Version,
		guard:          guard.NewConstructorGuard(),
	}
	if snap.Receipt != nil {
		r := *snap.Receipt
		s.receipt = &r
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setSender(snap.SenderID),
		s.setEndpoints(snap.Pickup, snap.Drop),
		s.setLoad(snap.Load),
	); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *Shipment) setSender(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("sender_id", err)
	}
	s.senderID = id
	return nil
}

func (s *Shipment) setEndpoints(pickup, drop Endpoint) error {
	if pickup.Address() == "" {
		return errs.NewValueIsRequiredError("pickup")
	}
	if drop.Address() == "" {
		return errs.NewValueIsRequiredError("drop")
	}
	s.pickup, s.drop = pickup, drop
	return nil
}

func (s *Shipment) setLoad(load kernel.Load) error {
	if load.IsZero() {
		return errs.NewValueIsInvalidError("load must not be empty")
	}
	s.load = load
	return nil
}

// Validate checks the aggregate invariants.
func (s *Shipment) Validate() error {
	if err := s.guard.Validate(ErrShipmentIsNotConstructed); err != nil {
		return err
	}
	if err := s.status.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(s.trackingNumber, trackingPrefix) {
		return errs.NewValueIsInvalidError("tracking_number")
	}
	if s.status.IsActive() && (s.vehicleID == nil || s.driverID == nil) {
		return errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"active shipment requires vehicle and driver")
	}
	if s.capacityHeld && s.vehicleID == nil {
		return errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"reservation held without vehicle")
	}
	if s.status.IsActive() && !s.capacityHeld {
		return errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"active shipment must hold its reservation")
	}
	return s.milestones.validateFor(s.status)
}

// Assign moves a PENDING shipment to ASSIGNED, recording the vehicle, driver
// and resolved zone (which may be nil). The caller must already hold the
// vehicle reservation.
func (s *Shipment) Assign(vehicleID, driverID kernel.UUID, zoneID *kernel.UUID, now time.Time) (TransitionEvent, error) {
	if s.status != Pending {
		return TransitionEvent{}, errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"only pending shipments can be dispatched")
	}
	if err := errors.Join(vehicleID.Validate(), driverID.Validate()); err != nil {
		return TransitionEvent{}, errs.NewValueIsInvalidErrorWithCause("assignment", err)
	}

	event, err := s.apply(Assigned, now)
	if err != nil {
		return TransitionEvent{}, err
	}

	v, d := vehicleID, driverID
	s.vehicleID, s.driverID = &v, &d
	if zoneID != nil {
		z := *zoneID
		s.zoneID = &z
	}
	s.capacityHeld = true
	return event, nil
}

// Transition applies any status change other than assignment and delivery.
// Moving to ASSIGNED goes through Assign because it needs a vehicle and
// driver; moving to DELIVERED goes through Deliver because it needs a receipt.
func (s *Shipment) Transition(target Status, now time.Time) (TransitionEvent, error) {
	if target == Assigned && s.status.CanTransitionTo(Assigned) {
		return TransitionEvent{}, errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"assignment requires a vehicle and driver")
	}
	if target == Delivered && s.status.CanTransitionTo(Delivered) {
		return TransitionEvent{}, errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"delivery requires a receipt")
	}

	event, err := s.apply(target, now)
	if err != nil {
		return TransitionEvent{}, err
	}

	if target == Confirmed && s.receipt != nil {
		s.receipt.ReceiverConfirmed = true
	}
	return event, nil
}

// Deliver moves IN_TRANSIT to DELIVERED and stores the proof of delivery.
// The receiver name is required. The receipt is stored as confirmed by the
// driver only; the receiver confirms later through the CONFIRMED transition.
//
// Returns ErrInvalidTransition when the shipment is not IN_TRANSIT and
// errs.ErrValueIsRequired when the receiver name is blank. On error the
// shipment is unchanged.
func (s *Shipment) Deliver(receipt DeliveryReceipt, now time.Time) (TransitionEvent, error) {
	if _, err := s.status.TransitionTo(Delivered); err != nil {
		return TransitionEvent{}, err
	}
	receipt.ReceiverName = strings.TrimSpace(receipt.ReceiverName)
	if receipt.ReceiverName == "" {
		return TransitionEvent{}, errs.NewValueIsRequiredError("receiver_name")
	}

	event, err := s.apply(Delivered, now)
	if err != nil {
		return TransitionEvent{}, err
	}
	receipt.DriverConfirmed = true
	receipt.ReceiverConfirmed = false
	s.receipt = &receipt
	return event, nil
}

func (s *Shipment) apply(target Status, now time.Time) (TransitionEvent, error) {
	from := s.status
	next, err := from.TransitionTo(target)
	if err != nil {
		return TransitionEvent{}, err
	}
	s.status = next
	s.milestones.stamp(next, now)
	return TransitionEvent{ShipmentID: s.id, From: from, To: next, At: now}, nil
}

// ReleaseReservation clears the outstanding vehicle reservation after the
// shipment left the active set. It reports false when nothing was held,
// which makes repeated releases harmless.
func (s *Shipment) ReleaseReservation() (released bool, err error) {
	if s.status.IsActive() {
		return false, errs.NewInvalidStateError("shipment", s.trackingNumber, s.status.String(),
			"cannot release capacity of an active shipment")
	}
	if !s.capacityHeld {
		return false, nil
	}
	s.capacityHeld = false
	return true, nil
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// TrackingNumber returns the public SHP-prefixed reference.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// SenderID returns the MSME user that created the shipment.
func (s *Shipment) SenderID() kernel.UUID {
	return s.senderID
}

// Pickup returns where the load is collected.
func (s *Shipment) Pickup() Endpoint {
	return s.pickup
}

// Drop returns where the load is delivered.
func (s *Shipment) Drop() Endpoint {
	return s.drop
}

// Load returns the weight and volume reserved on dispatch.
func (s *Shipment) Load() kernel.Load {
	return s.load
}

// Description returns the free-text contents note.
func (s *Shipment) Description() string {
	return s.description
}

// Status returns the lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// ZoneID returns a copy of the matched zone id, or nil.
func (s *Shipment) ZoneID() *kernel.UUID {
	return copyID(s.zoneID)
}

// VehicleID returns a copy of the assigned vehicle id, or nil while pending.
func (s *Shipment) VehicleID() *kernel.UUID {
	return copyID(s.vehicleID)
}

// DriverID returns a copy of the assigned driver id, or nil while pending.
func (s *Shipment) DriverID() *kernel.UUID {
	return copyID(s.driverID)
}

// CapacityHeld reports whether the load is still reserved on the vehicle.
func (s *Shipment) CapacityHeld() bool {
	return s.capacityHeld
}

// Milestones returns a copy of the stamped transition times.
func (s *Shipment) Milestones() Milestones {
	return s.milestones.clone()
}

// Version is the optimistic-lock version loaded from storage.
func (s *Shipment) Version() int {
	return s.version
}

// Receipt returns the delivery receipt, if one was captured.
func (s *Shipment) Receipt() (DeliveryReceipt, bool) {
	if s.receipt == nil {
		return DeliveryReceipt{}, false
	}
	return *s.receipt, true
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
