package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetWalletStatementQueryIsNotConstructed = errors.New(
	"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
)

// GetWalletStatementQuery reads a wallet, its most recent ledger entries and the
// sum of its whole ledger.
type GetWalletStatementQuery struct {
	userID     kernel.UUID
	walletType wallet.Type
	limit      int
	guard      guard.ConstructorGuard
}

func NewGetWalletStatementQuery(userID kernel.UUID, walletType wallet.Type, limit int) (GetWalletStatementQuery, error) {
	limit = limitOrDefault(limit)
	var errList []error
	if err := userID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := walletType.Validate(); err != nil {
		errList = append(errList, err)
	}
	if limit < 1 || limit > MaxLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit))
	}
	if err := errors.Join(errList...); err != nil {
		return GetWalletStatementQuery{}, err
	}

	return GetWalletStatementQuery{
		userID:     userID,
		walletType: walletType,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetWalletStatementQuery) UserID() kernel.UUID     { return q.userID }
func (q GetWalletStatementQuery) WalletType() wallet.Type { return q.walletType }
func (q GetWalletStatementQuery) Limit() int              { return q.limit }

func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// WalletStatement pairs the cached balance with the ledger it must equal.
type WalletStatement struct {
	WalletID       kernel.UUID
	UserID         kernel.UUID
	Type           wallet.Type
	Balance        int64
	TotalEarned    int64
	TotalWithdrawn int64
	LedgerSum      int64
	// Entries are newest first.
	Entries []StatementEntry
}

type StatementEntry struct {
	ID           kernel.UUID
	Kind         wallet.EntryKind
	Amount       int64
	BalanceAfter int64
	OrderID      *kernel.UUID
	PayoutID     *kernel.UUID
	Note         string
	CreatedAt    time.Time
}
