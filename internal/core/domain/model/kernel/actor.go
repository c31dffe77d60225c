package kernel

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Role is the capacity in which an already-authenticated principal acts.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleShipper  Role = "SHIPPER"
	RoleSystem   Role = "SYSTEM"
	RoleAdmin    Role = "ADMIN"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleCustomer: {},
		RoleOwner:    {},
		RoleShipper:  {},
		RoleSystem:   {},
		RoleAdmin:    {},
	}
}

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}

// IsBackOffice reports whether r may decide payouts.
func (r Role) IsBackOffice() bool {
	return r == RoleAdmin || r == RoleSystem
}

// Actor is the identity and role resolved by the request layer.
type Actor struct {
	id   UUID
	role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// SystemActor is used by jobs and compensations that no human triggered.
func SystemActor() Actor {
	return Actor{id: systemActorID, role: RoleSystem}
}

var systemActorID = MustUUIDFromString("00000000-0000-0000-0000-000000000001")

func (a Actor) ID() UUID   { return a.id }
func (a Actor) Role() Role { return a.role }

func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
