package commands

import (
	"context"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler is the order lifecycle controller.
//
// It applies the transition through the order aggregate, which enforces the
// role-gated transition table and stamps the timestamp. Two transitions carry side
// effects in the same transaction:
//   - into DELIVERED the order is settled: the shop and shipper wallets are credited
//     once, guarded by the order's paidOut flag, and the products' sold counts grow;
//   - into CANCELLED the reserved stock is returned. Voucher usage stays counted.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	var invalid *order.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    log.Printf("cannot go from %s to %s", invalid.Current, invalid.Requested)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory   UoWFactory
	runner       TxRunner
	walletLedger ledger.WalletLedger
	clock        kernel.Clock
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	runner TxRunner,
	walletLedger ledger.WalletLedger,
	clock kernel.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:   uowFactory,
		runner:       runner,
		walletLedger: walletLedger,
		clock:        clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := runInTx(ctx, h.runner, "transition order", h.uowFactory.Create, func(uow UoW) error {
		o, err := uow.OrderRepository().Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		if err = o.Transition(command.Actor(), command.Target(), command.Reason(), h.clock.Now()); err != nil {
			return err
		}

		switch o.Status() {
		case order.Delivered:
			if _, err = settle(ctx, uow, h.walletLedger, o); err != nil {
				return err
			}
		case order.Cancelled:
			if err = compensateCancellation(ctx, uow, o); err != nil {
				return err
			}
		default:
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
