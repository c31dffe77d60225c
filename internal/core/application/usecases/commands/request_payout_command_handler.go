package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// ErrPayoutIDTaken is returned when a payout id is reused by another user.
var ErrPayoutIDTaken = errs.NewValueIsInvalidError("payout id")

// RequestPayoutCommandHandler escrows the requested amount and opens a PENDING payout.
// The wallet debit and the payout request are written in one transaction; a balance
// below the amount fails with wallet.InsufficientBalanceError and writes nothing.
type RequestPayoutCommandHandler struct {
	uowFactory   WalletUoWFactory
	runner       TxRunner
	walletLedger ledger.WalletLedger
	minAmount    kernel.Money
	clock        kernel.Clock
}

func NewRequestPayoutCommandHandler(
	uowFactory WalletUoWFactory,
	runner TxRunner,
	walletLedger ledger.WalletLedger,
	minAmount kernel.Money,
	clock kernel.Clock,
) RequestPayoutCommandHandler {
	return RequestPayoutCommandHandler{
		uowFactory:   uowFactory,
		runner:       runner,
		walletLedger: walletLedger,
		minAmount:    minAmount,
		clock:        clock,
	}
}

func (h RequestPayoutCommandHandler) Handle(ctx context.Context, command RequestPayoutCommand) (*wallet.PayoutRequest, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if command.Amount().LessThan(h.minAmount) {
		return nil, errs.NewValueIsOutOfRangeError("payout amount", command.Amount().Amount(), h.minAmount.Amount(), "balance")
	}

	var result *wallet.PayoutRequest
	err := runInTx(ctx, h.runner, "request payout", h.uowFactory.Create, func(uow WalletUoW) error {
		existing, err := uow.PayoutRepository().Get(ctx, command.PayoutID())
		switch {
		case err == nil:
			if !existing.UserID().IsEqual(command.UserID()) {
				return fmt.Errorf("%w: %s belongs to another user", ErrPayoutIDTaken, command.PayoutID())
			}
			result = existing
			return nil
		case !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}

		posting, err := h.walletLedger.Debit(ctx, uow.WalletRepository(),
			command.UserID(), command.WalletType(), command.Amount(), wallet.Withdrawal(command.PayoutID()))
		if err != nil {
			return err
		}

		p, err := wallet.NewPayoutRequest(
			command.PayoutID(), posting.Wallet, command.Amount(), h.minAmount, command.Bank(), h.clock.Now())
		if err != nil {
			return err
		}

		if err = uow.PayoutRepository().Add(ctx, p); err != nil {
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
