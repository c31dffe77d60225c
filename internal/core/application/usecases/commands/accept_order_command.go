package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a shipper's claim of a READY order.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, shipperID)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // taken by someone else or not ready; retrying will not help
//	}
type AcceptOrderCommand struct {
	orderID   kernel.UUID
	shipperID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID, shipperID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), shipperID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:   orderID,
		shipperID: shipperID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AcceptOrderCommand) ShipperID() kernel.UUID { return c.shipperID }
