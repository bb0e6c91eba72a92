// Package user models the people the engine dispatches to and notifies.
// Only the DRIVER role matters to dispatch; the rest are carried for the
// boundary's role checks.
package user

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned by Validate on a zero-value User.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser")

// Role is the user's position in the platform.
type Role string

const (
	SuperAdmin   Role = "SUPER_ADMIN"
	FleetManager Role = "FLEET_MANAGER"
	Vendor       Role = "VENDOR"
	MSME         Role = "MSME"
	Driver       Role = "DRIVER"
	GateSecurity Role = "GATE_SECURITY"
	WarehouseOps Role = "WAREHOUSE_OPS"
)

// ParseRole accepts the Role constants, case-insensitively.
func ParseRole(value string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(value)))
	switch r {
	case SuperAdmin, FleetManager, Vendor, MSME, Driver, GateSecurity, WarehouseOps:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", value))
	}
}

// CanDispatch reports roles allowed to dispatch and reassign shipments.
func (r Role) CanDispatch() bool {
	return r == SuperAdmin || r == FleetManager
}

// User is a platform account. Inactive drivers are never picked by dispatch.
type User struct {
	id       kernel.UUID
	name     string
	email    string
	phone    string
	role     Role
	isActive bool

	guard guard.ConstructorGuard
}

// NewUser builds a user. Name is required; email and phone are optional.
//
// Example:
//
//	driver, err := user.NewUser(kernel.NewUUID(), "Suresh", "", "+910000000001", user.Driver, true)
func NewUser(id kernel.UUID, name, email, phone string, role Role, isActive bool) (*User, error) {
	var idErr, nameErr, roleErr error
	if err := id.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if _, err := ParseRole(string(role)); err != nil {
		roleErr = err
	}
	if err := errors.Join(idErr, nameErr, roleErr); err != nil {
		return nil, err
	}
	return &User{
		id:       id,
		name:     name,
		email:    email,
		phone:    phone,
		role:     role,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate fails for users not built through NewUser.
func (u *User) Validate() error {
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsDriver reports an active user with the DRIVER role.
func (u *User) IsDriver() bool {
	return u.role == Driver && u.isActive
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Name() string    { return u.name }
func (u *User) Email() string   { return u.email }
func (u *User) Phone() string   { return u.phone }
func (u *User) Role() Role      { return u.role }
func (u *User) IsActive() bool  { return u.isActive }
