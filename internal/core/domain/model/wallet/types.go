package wallet

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Type distinguishes the wallets a single user may hold.
type Type string

const (
	TypeShop    Type = "SHOP"
	TypeShipper Type = "SHIPPER"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	if t != TypeShop && t != TypeShipper {
		return errs.NewValueIsInvalidErrorWithCause("wallet type", fmt.Errorf("%q is not a wallet type", string(t)))
	}
	return nil
}

// EntryKind classifies ledger entries.
type EntryKind string

const (
	// KindOrderEarning credits a delivered order's share.
	KindOrderEarning EntryKind = "ORDER_EARNING"
	// KindAdjustment is a manual correction; it may be positive or negative.
	KindAdjustment EntryKind = "ADJUSTMENT"
	// KindWithdrawal debits the escrow of a payout request.
	KindWithdrawal EntryKind = "WITHDRAWAL"
	// KindWithdrawalReversal credits back a rejected payout.
	KindWithdrawalReversal EntryKind = "WITHDRAWAL_REVERSAL"
)

func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindOrderEarning, KindAdjustment, KindWithdrawal, KindWithdrawalReversal:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("entry kind", fmt.Errorf("%q is not an entry kind", s))
	}
}

// isCredit reports whether entries of this kind add to the balance.
func (k EntryKind) isCredit() bool {
	return k == KindOrderEarning || k == KindWithdrawalReversal
}
