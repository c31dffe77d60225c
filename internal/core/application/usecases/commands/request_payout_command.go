package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestPayoutCommandIsNotConstructed = errors.New(
	"RequestPayoutCommand must be created via NewRequestPayoutCommand constructor",
)

// RequestPayoutCommand withdraws amount from the user's wallet of the given type.
// The payout id is generated by the caller; resubmitting returns the existing request.
//
// Example:
//
//	bank, _ := wallet.NewBankAccount("VCB", "0071000123456", "TRAN VAN A")
//	cmd, err := NewRequestPayoutCommand(kernel.NewUUID(), userID, wallet.TypeShipper, kernel.MustMoney(100_000), bank)
//	p, err := handler.Handle(ctx, cmd)
type RequestPayoutCommand struct {
	payoutID   kernel.UUID
	userID     kernel.UUID
	walletType wallet.Type
	amount     kernel.Money
	bank       wallet.BankAccount

	guard guard.ConstructorGuard
}

func NewRequestPayoutCommand(
	payoutID, userID kernel.UUID, walletType wallet.Type, amount kernel.Money, bank wallet.BankAccount,
) (RequestPayoutCommand, error) {
	var errList []error
	errList = append(errList, payoutID.Validate(), userID.Validate(), walletType.Validate())
	if amount.IsZero() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("payout amount", amount.Amount(), 1, "balance"))
	}
	if _, err := wallet.NewBankAccount(bank.BankName, bank.AccountNumber, bank.AccountHolder); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return RequestPayoutCommand{}, err
	}

	return RequestPayoutCommand{
		payoutID:   payoutID,
		userID:     userID,
		walletType: walletType,
		amount:     amount,
		bank:       bank,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RequestPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestPayoutCommandIsNotConstructed)
}

func (c RequestPayoutCommand) PayoutID() kernel.UUID    { return c.payoutID }
func (c RequestPayoutCommand) UserID() kernel.UUID      { return c.userID }
func (c RequestPayoutCommand) WalletType() wallet.Type  { return c.walletType }
func (c RequestPayoutCommand) Amount() kernel.Money     { return c.amount }
func (c RequestPayoutCommand) Bank() wallet.BankAccount { return c.bank }
