// Package account contains the User entity used for marketplace onboarding.
// Authentication is out of scope; a user here is the identity an order or a
// vehicle is attributed to, with a role deciding which side of the
// marketplace they act on.
package account

import (
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// Domain errors for account operations.
var (
	// ErrNameIsRequired is returned when attempting to create a user without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// Role decides which side of the marketplace a user acts on.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleShipper posts orders.
	RoleShipper

	// RoleCarrier accepts and hauls orders.
	RoleCarrier

	// RoleAdmin operates the marketplace.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleShipper: "SHIPPER",
		RoleCarrier: "CARRIER",
		RoleAdmin:   "ADMIN",
	}
}

// Validate checks the role against the known set. RoleUnknown is invalid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire token of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// RoleFromString parses a wire token back into a Role.
func RoleFromString(raw string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == raw {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", raw))
}

// User is a marketplace participant.
type User struct {
	id    kernel.UUID
	name  string
	role  Role
	guard guard.ConstructorGuard
}

// NewUser creates a marketplace user with a validated name and role.
func NewUser(id kernel.UUID, name string, role Role) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate checks if the User was properly constructed.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by identifier.
func (u *User) IsEqual(other *User) bool {
	if other == nil {
		return false
	}
	return u.id.IsEqual(other.id)
}

// ID returns the user identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Role returns the marketplace role.
func (u *User) Role() Role {
	return u.role
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
