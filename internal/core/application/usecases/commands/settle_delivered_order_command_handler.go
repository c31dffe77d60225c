package commands

import (
	"context"

	"marketplace/internal/core/application/ledger"
)

// SettleDeliveredOrderCommandHandler credits the wallets of a DELIVERED order that is
// not paid out yet. Running it again on a paid-out order changes nothing and reports
// false, so it is safe to call after a crash or from a periodic job.
type SettleDeliveredOrderCommandHandler struct {
	uowFactory   UoWFactory
	runner       TxRunner
	walletLedger ledger.WalletLedger
}

func NewSettleDeliveredOrderCommandHandler(
	uowFactory UoWFactory, runner TxRunner, walletLedger ledger.WalletLedger,
) SettleDeliveredOrderCommandHandler {
	return SettleDeliveredOrderCommandHandler{
		uowFactory:   uowFactory,
		runner:       runner,
		walletLedger: walletLedger,
	}
}

// Handle reports whether this call paid the order out.
func (h SettleDeliveredOrderCommandHandler) Handle(ctx context.Context, command SettleDeliveredOrderCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	var settled bool
	err := runInTx(ctx, h.runner, "settle delivered order", h.uowFactory.Create, func(uow UoW) error {
		settled = false

		o, err := uow.OrderRepository().Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		ok, err := settle(ctx, uow, h.walletLedger, o)
		if err != nil || !ok {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}

		settled = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return settled, nil
}
