package commands

import (
	"context"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// DecidePayoutCommandHandler drives the payout state machine.
//
// Approve and transfer have no balance effect, the amount was escrowed at request
// time. Reject credits the amount back with a WITHDRAWAL_REVERSAL entry in the same
// transaction as the status change.
type DecidePayoutCommandHandler struct {
	uowFactory   WalletUoWFactory
	runner       TxRunner
	walletLedger ledger.WalletLedger
	clock        kernel.Clock
}

func NewDecidePayoutCommandHandler(
	uowFactory WalletUoWFactory, runner TxRunner, walletLedger ledger.WalletLedger, clock kernel.Clock,
) DecidePayoutCommandHandler {
	return DecidePayoutCommandHandler{
		uowFactory:   uowFactory,
		runner:       runner,
		walletLedger: walletLedger,
		clock:        clock,
	}
}

func (h DecidePayoutCommandHandler) Handle(ctx context.Context, command DecidePayoutCommand) (*wallet.PayoutRequest, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *wallet.PayoutRequest
	err := runInTx(ctx, h.runner, "decide payout", h.uowFactory.Create, func(uow WalletUoW) error {
		p, err := uow.PayoutRepository().Get(ctx, command.PayoutID())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		switch command.Decision() {
		case DecisionApprove:
			err = p.Approve(command.Actor(), now)
		case DecisionTransfer:
			err = p.MarkTransferred(command.Actor(), now)
		case DecisionReject:
			if err = p.Reject(command.Actor(), command.Reason(), now); err != nil {
				return err
			}
			_, err = h.walletLedger.Credit(ctx, uow.WalletRepository(), p.UserID(), p.WalletType(), p.Amount(),
				wallet.WithdrawalReversal(p.ID(), command.Reason()))
		}
		if err != nil {
			return err
		}

		if err = uow.PayoutRepository().Update(ctx, p); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
