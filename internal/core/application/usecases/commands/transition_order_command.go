package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order to a target status on behalf of an actor.
//
// Example:
//
//	owner, _ := kernel.NewActor(ownerID, kernel.RoleOwner)
//	cmd, err := NewTransitionOrderCommand(orderID, owner, order.Confirmed, "")
//	o, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand checks only the shape of the request. Whether the edge
// exists and the actor may take it is decided against the stored order.
func NewTransitionOrderCommand(
	orderID kernel.UUID, actor kernel.Actor, target order.Status, reason string,
) (TransitionOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate(), target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		actor:   actor,
		target:  target,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c TransitionOrderCommand) Target() order.Status { return c.target }
func (c TransitionOrderCommand) Reason() string       { return c.reason }
