package wallet

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// LedgerEntry is an immutable record of one balance change.
type LedgerEntry struct {
	id            kernel.UUID
	walletID      kernel.UUID
	kind          EntryKind
	amount        int64
	balanceBefore int64
	balanceAfter  int64
	orderID       *kernel.UUID
	payoutID      *kernel.UUID
	note          string
	createdAt     time.Time
}

// EntryParams restores a persisted entry.
type EntryParams struct {
	ID            kernel.UUID
	WalletID      kernel.UUID
	Kind          EntryKind
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	OrderID       *kernel.UUID
	PayoutID      *kernel.UUID
	Note          string
	CreatedAt     time.Time
}

func RestoreLedgerEntry(p EntryParams) *LedgerEntry {
	return &LedgerEntry{
		id:            p.ID,
		walletID:      p.WalletID,
		kind:          p.Kind,
		amount:        p.Amount,
		balanceBefore: p.BalanceBefore,
		balanceAfter:  p.BalanceAfter,
		orderID:       p.OrderID,
		payoutID:      p.PayoutID,
		note:          p.Note,
		createdAt:     p.CreatedAt,
	}
}

func (e *LedgerEntry) ID() kernel.UUID        { return e.id }
func (e *LedgerEntry) WalletID() kernel.UUID  { return e.walletID }
func (e *LedgerEntry) Kind() EntryKind        { return e.kind }
func (e *LedgerEntry) Amount() int64          { return e.amount }
func (e *LedgerEntry) BalanceBefore() int64   { return e.balanceBefore }
func (e *LedgerEntry) BalanceAfter() int64    { return e.balanceAfter }
func (e *LedgerEntry) OrderID() *kernel.UUID  { return e.orderID }
func (e *LedgerEntry) PayoutID() *kernel.UUID { return e.payoutID }
func (e *LedgerEntry) Note() string           { return e.note }
func (e *LedgerEntry) CreatedAt() time.Time   { return e.createdAt }

// Cause links a ledger entry to what produced it.
type Cause struct {
	Kind     EntryKind
	OrderID  *kernel.UUID
	PayoutID *kernel.UUID
	Note     string
}

func OrderEarning(orderID kernel.UUID) Cause {
	return Cause{Kind: KindOrderEarning, OrderID: &orderID}
}

func Withdrawal(payoutID kernel.UUID) Cause {
	return Cause{Kind: KindWithdrawal, PayoutID: &payoutID}
}

func WithdrawalReversal(payoutID kernel.UUID, note string) Cause {
	return Cause{Kind: KindWithdrawalReversal, PayoutID: &payoutID, Note: note}
}

func Adjustment(note string) Cause {
	return Cause{Kind: KindAdjustment, Note: note}
}
