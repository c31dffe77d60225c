package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	ErrNonNegativeTotalViolation = errs.NewBusinessRuleError("order total must not be negative")
	ErrNotClaimable              = errs.NewInvalidStateError("order is not claimable")
	ErrNotDelivered              = errs.NewInvalidStateError("order is not delivered")
)

// InvalidTransitionError is returned for an edge that is not in the transition table.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move order from %s to %s", errs.ErrInvalidState, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrInvalidState
}

// ActorNotPermittedError is returned when the edge exists but the actor's role may not trigger it.
type ActorNotPermittedError struct {
	Role      kernel.Role
	Current   Status
	Requested Status
}

func (e *ActorNotPermittedError) Error() string {
	return fmt.Sprintf("%s: role %s may not move order from %s to %s",
		errs.ErrInvalidState, e.Role, e.Current, e.Requested)
}

func (e *ActorNotPermittedError) Unwrap() error {
	return errs.ErrInvalidState
}

// NotOrderPartyError is returned when the actor has the right role but is not
// the customer, shop owner or assigned shipper of this particular order.
type NotOrderPartyError struct {
	OrderID kernel.UUID
	Actor   kernel.Actor
}

func (e *NotOrderPartyError) Error() string {
	return fmt.Sprintf("%s: %s is not a party of order %s", errs.ErrInvalidState, e.Actor, e.OrderID)
}

func (e *NotOrderPartyError) Unwrap() error {
	return errs.ErrInvalidState
}

// AlreadyAssignedError is returned to every shipper that loses the race for an order.
// Retrying is pointless.
type AlreadyAssignedError struct {
	OrderID   kernel.UUID
	ShipperID kernel.UUID
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("%s: order %s is already assigned to shipper %s", errs.ErrInvalidState, e.OrderID, e.ShipperID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return errs.ErrInvalidState
}
