package ledger_test

import (
	"testing"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletLedger_CreditCreatesWalletOnFirstUse(t *testing.T) {
	ctx := t.Context()
	l := ledger.NewWalletLedger(kernel.FixedClock{At: now})
	repo := newMemWalletRepo()
	ownerID := kernel.NewUUID()

	posting, err := l.Credit(ctx, repo, ownerID, wallet.TypeShop, kernel.MustMoney(90_000),
		wallet.OrderEarning(kernel.NewUUID()))

	require.NoError(t, err)
	assert.Equal(t, 1, repo.adds)
	assert.Equal(t, int64(90_000), posting.Wallet.Balance())
	assert.Equal(t, int64(0), posting.Entry.BalanceBefore())
	assert.Equal(t, int64(90_000), posting.Entry.BalanceAfter())

	_, err = l.Credit(ctx, repo, ownerID, wallet.TypeShop, kernel.MustMoney(10_000),
		wallet.OrderEarning(kernel.NewUUID()))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.adds)
}

func TestWalletLedger_BalanceEqualsLedgerSum(t *testing.T) {
	ctx := t.Context()
	l := ledger.NewWalletLedger(kernel.FixedClock{At: now})
	repo := newMemWalletRepo()
	userID := kernel.NewUUID()

	_, err := l.Credit(ctx, repo, userID, wallet.TypeShipper, kernel.MustMoney(200_000),
		wallet.OrderEarning(kernel.NewUUID()))
	require.NoError(t, err)

	payoutID := kernel.NewUUID()
	_, err = l.Debit(ctx, repo, userID, wallet.TypeShipper, kernel.MustMoney(100_000), wallet.Withdrawal(payoutID))
	require.NoError(t, err)

	_, err = l.Debit(ctx, repo, userID, wallet.TypeShipper, kernel.MustMoney(150_000),
		wallet.Withdrawal(kernel.NewUUID()))
	var insufficient *wallet.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)

	posting, err := l.Credit(ctx, repo, userID, wallet.TypeShipper, kernel.MustMoney(100_000),
		wallet.WithdrawalReversal(payoutID, "wrong account"))
	require.NoError(t, err)

	w := posting.Wallet
	assert.Equal(t, int64(200_000), w.Balance())
	assert.Equal(t, repo.ledgerSum(w.ID()), w.Balance())
	assert.Equal(t, w.TotalEarned()-w.TotalWithdrawn(), w.Balance())
	assert.Equal(t, int64(0), w.TotalWithdrawn())
}
