package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletRepository persists wallets together with the ledger entries appended to them.
type WalletRepository interface {
	// Get returns the wallet of userID of the given type or errs.ErrObjectNotFound.
	Get(ctx context.Context, userID kernel.UUID, walletType wallet.Type) (*wallet.Wallet, error)
	// Add inserts a new wallet and its pending ledger entries.
	Add(ctx context.Context, aggregate *wallet.Wallet) error
	// Update writes the cached totals under a version check and appends pending entries.
	Update(ctx context.Context, aggregate *wallet.Wallet) error
	// ListEntries returns the wallet's ledger oldest first.
	ListEntries(ctx context.Context, walletID kernel.UUID) ([]*wallet.LedgerEntry, error)
}

type PayoutRepository interface {
	Add(ctx context.Context, aggregate *wallet.PayoutRequest) error
	Get(ctx context.Context, id kernel.UUID) (*wallet.PayoutRequest, error)
	Update(ctx context.Context, aggregate *wallet.PayoutRequest) error
}
