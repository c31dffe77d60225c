package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSettleDeliveredOrderCommandIsNotConstructed = errors.New(
	"SettleDeliveredOrderCommand must be created via NewSettleDeliveredOrderCommand constructor",
)

// SettleDeliveredOrderCommand re-runs the delivery-completion payout of one order.
type SettleDeliveredOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSettleDeliveredOrderCommand(orderID kernel.UUID) (SettleDeliveredOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SettleDeliveredOrderCommand{}, err
	}
	return SettleDeliveredOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SettleDeliveredOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleDeliveredOrderCommandIsNotConstructed)
}

func (c SettleDeliveredOrderCommand) OrderID() kernel.UUID { return c.orderID }
