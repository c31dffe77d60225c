package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/guard"
)

var ErrFindLedgerDriftQueryIsNotConstructed = errors.New(
	"FindLedgerDriftQuery must be created via NewFindLedgerDriftQuery constructor",
)

// FindLedgerDriftQuery finds wallets whose cached balance differs from the sum of their ledger.
// A healthy store always returns nothing.
type FindLedgerDriftQuery struct {
	guard guard.ConstructorGuard
}

func NewFindLedgerDriftQuery() FindLedgerDriftQuery {
	return FindLedgerDriftQuery{guard: guard.NewConstructorGuard()}
}

func (q FindLedgerDriftQuery) Validate() error {
	return q.guard.Validate(ErrFindLedgerDriftQueryIsNotConstructed)
}

type LedgerDrift struct {
	WalletID  kernel.UUID
	UserID    kernel.UUID
	Type      wallet.Type
	Balance   int64
	LedgerSum int64
}
