package wallet

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrWalletIsNotConstructed = errors.New("wallet must be created via NewWallet or RestoreWallet")

// InsufficientBalanceError is returned when a debit would make the balance negative.
type InsufficientBalanceError struct {
	WalletID  kernel.UUID
	Balance   int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: wallet %s has balance %d, %d requested",
		errs.ErrBusinessRuleViolation, e.WalletID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return errs.ErrBusinessRuleViolation
}

// Wallet is the cached projection of a ledger. It is mutated only by Credit and Debit,
// each of which appends one LedgerEntry retrievable with PullNewEntries.
type Wallet struct {
	id             kernel.UUID
	userID         kernel.UUID
	walletType     Type
	balance        int64
	totalEarned    int64
	totalWithdrawn int64
	version        int64
	createdAt      time.Time

	newEntries []*LedgerEntry

	isConstructed bool
}

func NewWallet(id, userID kernel.UUID, walletType Type, now time.Time) (*Wallet, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), walletType.Validate()); err != nil {
		return nil, err
	}
	return &Wallet{
		id:            id,
		userID:        userID,
		walletType:    walletType,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// Params is the persisted state of a wallet.
type Params struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	Type           Type
	Balance        int64
	TotalEarned    int64
	TotalWithdrawn int64
	Version        int64
	CreatedAt      time.Time
}

// RestoreWallet rejects rows whose cached totals do not reconcile.
func RestoreWallet(p Params) (*Wallet, error) {
	w, err := NewWallet(p.ID, p.UserID, p.Type, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Balance < 0 {
		return nil, errs.NewValueIsOutOfRangeError("balance", p.Balance, 0, "unbounded")
	}
	if p.Balance != p.TotalEarned-p.TotalWithdrawn {
		return nil, errs.NewValueIsInvalidErrorWithCause("wallet totals", fmt.Errorf(
			"balance %d != earned %d - withdrawn %d", p.Balance, p.TotalEarned, p.TotalWithdrawn))
	}
	w.balance = p.Balance
	w.totalEarned = p.TotalEarned
	w.totalWithdrawn = p.TotalWithdrawn
	w.version = p.Version
	return w, nil
}

func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

func (w *Wallet) ID() kernel.UUID       { return w.id }
func (w *Wallet) UserID() kernel.UUID   { return w.userID }
func (w *Wallet) Type() Type            { return w.walletType }
func (w *Wallet) Balance() int64        { return w.balance }
func (w *Wallet) TotalEarned() int64    { return w.totalEarned }
func (w *Wallet) TotalWithdrawn() int64 { return w.totalWithdrawn }
func (w *Wallet) Version() int64        { return w.version }
func (w *Wallet) CreatedAt() time.Time  { return w.createdAt }
func (w *Wallet) IncrementVersion()     { w.version++ }

// PullNewEntries returns the entries appended since the wallet was loaded and forgets them.
func (w *Wallet) PullNewEntries() []*LedgerEntry {
	entries := w.newEntries
	w.newEntries = nil
	return entries
}

// Credit adds amount to the balance. Cause kind must be an earning, a reversal or an adjustment.
func (w *Wallet) Credit(amount kernel.Money, cause Cause, now time.Time) (*LedgerEntry, error) {
	if amount.IsZero() {
		return nil, errs.NewValueIsOutOfRangeError("credit amount", amount.Amount(), 1, "unbounded")
	}
	if !cause.Kind.isCredit() && cause.Kind != KindAdjustment {
		return nil, errs.NewValueIsInvalidErrorWithCause("cause", fmt.Errorf("%s cannot credit a wallet", cause.Kind))
	}
	return w.append(amount.Amount(), cause, now)
}

// Debit subtracts amount from the balance or fails with InsufficientBalanceError.
// Cause kind must be a withdrawal or an adjustment.
func (w *Wallet) Debit(amount kernel.Money, cause Cause, now time.Time) (*LedgerEntry, error) {
	if amount.IsZero() {
		return nil, errs.NewValueIsOutOfRangeError("debit amount", amount.Amount(), 1, "unbounded")
	}
	if cause.Kind != KindWithdrawal && cause.Kind != KindAdjustment {
		return nil, errs.NewValueIsInvalidErrorWithCause("cause", fmt.Errorf("%s cannot debit a wallet", cause.Kind))
	}
	if w.balance < amount.Amount() {
		return nil, &InsufficientBalanceError{WalletID: w.id, Balance: w.balance, Requested: amount.Amount()}
	}
	return w.append(-amount.Amount(), cause, now)
}

func (w *Wallet) append(signed int64, cause Cause, now time.Time) (*LedgerEntry, error) {
	entry := &LedgerEntry{
		id:            kernel.NewUUID(),
		walletID:      w.id,
		kind:          cause.Kind,
		amount:        signed,
		balanceBefore: w.balance,
		balanceAfter:  w.balance + signed,
		orderID:       cause.OrderID,
		payoutID:      cause.PayoutID,
		note:          cause.Note,
		createdAt:     now,
	}

	w.balance += signed
	switch cause.Kind {
	case KindOrderEarning, KindAdjustment:
		w.totalEarned += signed
	case KindWithdrawal, KindWithdrawalReversal:
		w.totalWithdrawn -= signed
	}

	w.newEntries = append(w.newEntries, entry)
	return entry, nil
}
