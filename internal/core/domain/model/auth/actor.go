// Package auth provides the request-scoped authorization context passed into
// every lifecycle operation. Session issuance happens upstream; by the time a
// request reaches this service the actor's identity and role are resolved.
package auth

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role identifies what kind of marketplace participant an actor is.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the receiving party of a delivery.
	RoleClient

	// RoleCourier carries deliveries and earns commission on success.
	RoleCourier

	// RoleMerchant is the sending merchant associated with a delivery.
	RoleMerchant

	// RoleAdmin is a platform operator with full lifecycle access.
	RoleAdmin
)

func getRoleNames() map[Role]string {
	return map[Role]string{
		RoleClient:   "CLIENT",
		RoleCourier:  "COURIER",
		RoleMerchant: "MERCHANT",
		RoleAdmin:    "ADMIN",
	}
}

// ParseRole converts a wire-format role name into a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleNames() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire-format name of the role.
func (r Role) String() string {
	if name, ok := getRoleNames()[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getRoleNames()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated principal performing an operation.
// It is a value object carrying only what authorization decisions need:
// the actor's identity and role.
type Actor struct {
	id            kernel.UUID
	role          Role
	isConstructed bool
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor is a platform operator.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// Is reports whether the actor is the given principal.
func (a Actor) Is(id kernel.UUID) bool {
	return a.id.IsEqual(id)
}
