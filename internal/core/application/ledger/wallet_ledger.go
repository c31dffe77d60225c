package ledger

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// Posting is a wallet together with the entry just appended to it.
type Posting struct {
	Wallet *wallet.Wallet
	Entry  *wallet.LedgerEntry
}

type WalletLedger struct {
	clock kernel.Clock
}

func NewWalletLedger(clock kernel.Clock) WalletLedger {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return WalletLedger{clock: clock}
}

// Credit adds amount to the (userID, walletType) wallet, creating it on first use.
func (l WalletLedger) Credit(
	ctx context.Context, repo ports.WalletRepository,
	userID kernel.UUID, walletType wallet.Type, amount kernel.Money, cause wallet.Cause,
) (Posting, error) {
	return l.post(ctx, repo, userID, walletType, func(w *wallet.Wallet) (*wallet.LedgerEntry, error) {
		return w.Credit(amount, cause, l.clock.Now())
	})
}

// Debit subtracts amount from the wallet or fails with wallet.InsufficientBalanceError.
func (l WalletLedger) Debit(
	ctx context.Context, repo ports.WalletRepository,
	userID kernel.UUID, walletType wallet.Type, amount kernel.Money, cause wallet.Cause,
) (Posting, error) {
	return l.post(ctx, repo, userID, walletType, func(w *wallet.Wallet) (*wallet.LedgerEntry, error) {
		return w.Debit(amount, cause, l.clock.Now())
	})
}

func (l WalletLedger) post(
	ctx context.Context, repo ports.WalletRepository,
	userID kernel.UUID, walletType wallet.Type,
	mutate func(w *wallet.Wallet) (*wallet.LedgerEntry, error),
) (Posting, error) {
	w, created, err := l.load(ctx, repo, userID, walletType)
	if err != nil {
		return Posting{}, err
	}

	entry, err := mutate(w)
	if err != nil {
		return Posting{}, err
	}

	if created {
		err = repo.Add(ctx, w)
	} else {
		err = repo.Update(ctx, w)
	}
	if err != nil {
		return Posting{}, err
	}

	return Posting{Wallet: w, Entry: entry}, nil
}

func (l WalletLedger) load(
	ctx context.Context, repo ports.WalletRepository, userID kernel.UUID, walletType wallet.Type,
) (*wallet.Wallet, bool, error) {
	w, err := repo.Get(ctx, userID, walletType)
	if err == nil {
		return w, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	w, err = wallet.NewWallet(kernel.NewUUID(), userID, walletType, l.clock.Now())
	if err != nil {
		return nil, false, err
	}
	return w, true, nil
}
