package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler is the shipper assignment arbiter.
//
// The check that the order is unassigned and the write of the shipper happen in one
// serializable transaction with a version check on the order row. When two shippers
// race, one commits; the other's attempt conflicts, is retried on fresh state and then
// fails with order.AlreadyAssignedError.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	runner     TxRunner
	clock      kernel.Clock
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, runner TxRunner, clock kernel.Clock) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
		clock:      clock,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	shipper, err := kernel.NewActor(command.ShipperID(), kernel.RoleShipper)
	if err != nil {
		return nil, err
	}

	var result *order.Order
	err = runInTx(ctx, h.runner, "accept order", h.uowFactory.Create, func(uow OrderUoW) error {
		o, err := uow.OrderRepository().Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		if err = o.AssignShipper(shipper, h.clock.Now()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
