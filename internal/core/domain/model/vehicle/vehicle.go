package vehicle

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed is returned by Validate on a zero-value Vehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

// Vehicle tracks capacity limits and current usage.
// Usage only moves through Reserve, Release and CancelReservation, so that
// zero <= used <= capacity holds in both weight and volume.
//
// Example:
//
//	capacity, _ := kernel.NewLoadFromFloat(5000, 25)
//	truck, err := vehicle.NewVehicle(kernel.NewUUID(), "Tata 407", "KA01AB1234", vehicle.Truck, capacity)
//	if err != nil {
//	    return err
//	}
//	if err := truck.Reserve(shipment.Load()); err != nil {
//	    // *vehicle.CapacityExceededError, usage unchanged
//	}
type Vehicle struct {
	id              kernel.UUID
	name            string
	plate           string
	vehicleType     Type
	capacity        kernel.Load
	used            kernel.Load
	status          Status
	zoneID          *kernel.UUID
	defaultDriverID *kernel.UUID
	version         int

	guard guard.ConstructorGuard
}

// NewVehicle registers an empty, AVAILABLE vehicle.
// The plate is trimmed and upper-cased.
//
// Parameters:
//   - id: vehicle identifier
//   - name: display name, may be empty
//   - plate: registration plate, required
//   - vehicleType: one of the Type constants
//   - capacity: maximum load, positive in both dimensions
//
// Returns:
//   - *Vehicle: the new vehicle with zero usage
//   - error: every validation failure, joined
func NewVehicle(id kernel.UUID, name, plate string, vehicleType Type, capacity kernel.Load) (*Vehicle, error) {
	v := &Vehicle{
		name:   name,
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		vehicleType.Validate(),
		v.setCapacity(capacity),
	); err != nil {
		return nil, err
	}
	v.vehicleType = vehicleType
	return v, nil
}

// Snapshot carries persisted state into RestoreVehicle.
type Snapshot struct {
	ID              kernel.UUID
	Name            string
	Plate           string
	Type            Type
	Capacity        kernel.Load
	Used            kernel.Load
	Status          Status
	ZoneID          *kernel.UUID
	DefaultDriverID *kernel.UUID
	Version         int
}

// RestoreVehicle rebuilds a vehicle from storage. Unlike NewVehicle it
// accepts any status and non-zero usage, but still rejects usage above
// capacity, so a corrupted row fails loudly instead of overbooking.
//
// Example:
//
//	v, err := vehicle.RestoreVehicle(vehicle.Snapshot{
//	    ID: id, Plate: "KA01AB1234", Type: vehicle.Truck,
//	    Capacity: capacity, Used: used, Status: vehicle.OnTrip, Version: 3,
//	})
func RestoreVehicle(snap Snapshot) (*Vehicle, error) {
	v := &Vehicle{
		name:            snap.Name,
		vehicleType:     snap.Type,
		used:            snap.Used,
		status:          snap.Status,
		zoneID:          snap.ZoneID,
		defaultDriverID: snap.DefaultDriverID,
		version:         snap.Version,
		guard:           guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		v.setID(snap.ID),
		v.setPlate(snap.Plate),
		v.setCapacity(snap.Capacity),
	); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	v.plate = strings.ToUpper(plate)
	return nil
}

func (v *Vehicle) setCapacity(capacity kernel.Load) error {
	if !capacity.Weight().IsPositive() || !capacity.Volume().IsPositive() {
		return errs.NewValueIsInvalidError("capacity must be positive")
	}
	v.capacity = capacity
	return nil
}

// Validate checks construction, status, type and the usage bound.
// Repositories call it before every write.
func (v *Vehicle) Validate() error {
	if err := v.guard.Validate(ErrVehicleIsNotConstructed); err != nil {
		return err
	}
	if err := errors.Join(v.status.Validate(), v.vehicleType.Validate()); err != nil {
		return err
	}
	if !v.used.Fits(v.capacity) {
		return errs.NewValueIsOutOfRangeError("used", v.used, kernel.ZeroLoad, v.capacity)
	}
	return nil
}

// Remaining is the headroom left in both dimensions.
func (v *Vehicle) Remaining() kernel.Load {
	remaining, _ := v.capacity.SubClamped(v.used)
	return remaining
}

// CanCarry is the non-mutating capacity check used during candidate search.
func (v *Vehicle) CanCarry(load kernel.Load) bool {
	return v.used.Add(load).Fits(v.capacity)
}

// IsDispatchable reports whether auto-search may pick this vehicle.
func (v *Vehicle) IsDispatchable() bool {
	return v.status == Available
}

// Reserve adds load to usage or fails with *CapacityExceededError leaving usage untouched.
// A reserving vehicle becomes ON_TRIP unless an operator parked it.
func (v *Vehicle) Reserve(load kernel.Load) error {
	if !v.CanCarry(load) {
		return &CapacityExceededError{VehicleID: v.id, Requested: load, Remaining: v.Remaining()}
	}
	v.used = v.used.Add(load)
	if !v.status.IsManual() {
		v.status = OnTrip
	}
	return nil
}

// Release subtracts load from usage, flooring at zero. clamped is true when
// the floor was hit, which means the ledger was already inconsistent.
func (v *Vehicle) Release(load kernel.Load) (clamped bool) {
	v.used, clamped = v.used.SubClamped(load)
	return clamped
}

// CancelReservation undoes a Reserve that was not followed by an assignment.
// Usage is reduced by load and the status observed before Reserve comes back.
func (v *Vehicle) CancelReservation(load kernel.Load, previous Status) (clamped bool) {
	clamped = v.Release(load)
	if previous.Validate() == nil {
		v.status = previous
	}
	return clamped
}

// RefreshOccupancy derives AVAILABLE/ON_TRIP from the number of active
// shipments referencing this vehicle. Manual statuses are left alone.
func (v *Vehicle) RefreshOccupancy(activeShipments int64) {
	if v.status.IsManual() {
		return
	}
	if activeShipments > 0 {
		v.status = OnTrip
		return
	}
	v.status = Available
}

// SetManualStatus lets operators park a vehicle or bring it back.
// Bringing a vehicle back goes through AVAILABLE; RefreshOccupancy corrects it afterwards.
func (v *Vehicle) SetManualStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == OnTrip {
		return errs.NewValueIsInvalidError("ON_TRIP is derived from active shipments")
	}
	v.status = status
	return nil
}

// AssignZone sets or clears the home zone preferred by dispatch.
func (v *Vehicle) AssignZone(zoneID *kernel.UUID) {
	v.zoneID = copyID(zoneID)
}

// AssignDefaultDriver sets or clears the driver that dispatch uses without an activity check.
func (v *Vehicle) AssignDefaultDriver(driverID *kernel.UUID) {
	v.defaultDriverID = copyID(driverID)
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Name returns the display name.
func (v *Vehicle) Name() string {
	return v.name
}

// Plate returns the normalized registration plate.
func (v *Vehicle) Plate() string {
	return v.plate
}

// Type returns the body type.
func (v *Vehicle) Type() Type {
	return v.vehicleType
}

// Capacity returns the maximum load.
func (v *Vehicle) Capacity() kernel.Load {
	return v.capacity
}

// Used returns the load currently reserved by active shipments.
//
// Example:
//
//	if v.Used().IsZero() {
//	    // nothing on board
//	}
func (v *Vehicle) Used() kernel.Load {
	return v.used
}

// Status returns the availability flag.
func (v *Vehicle) Status() Status {
	return v.status
}

// ZoneID returns a copy of the home zone id, or nil.
func (v *Vehicle) ZoneID() *kernel.UUID {
	return copyID(v.zoneID)
}

// DefaultDriverID returns a copy of the default driver id, or nil.
func (v *Vehicle) DefaultDriverID() *kernel.UUID {
	return copyID(v.defaultDriverID)
}

// Version is the optimistic-lock version loaded from storage.
func (v *Vehicle) Version() int {
	return v.version
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
