package ledger_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSave10(t *testing.T, shopID kernel.UUID, perUser int) *voucher.Voucher {
	t.Helper()
	v, err := voucher.NewVoucher(voucher.Params{
		ID:                kernel.NewUUID(),
		ShopID:            shopID,
		Code:              "SAVE10",
		DiscountType:      voucher.Percentage,
		Value:             10,
		MinOrderAmount:    kernel.MustMoney(50_000),
		UsageLimit:        5,
		UsageLimitPerUser: perUser,
		ValidFrom:         now.Add(-24 * time.Hour),
		ValidTo:           now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return v
}

func TestVoucherLedger_Apply(t *testing.T) {
	ctx := t.Context()
	l := ledger.NewVoucherLedger(kernel.FixedClock{At: now})
	shopID := kernel.NewUUID()

	t.Run("redeems once and records usage", func(t *testing.T) {
		v := newSave10(t, shopID, 1)
		repo := newMemVoucherRepo(v)
		req := ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: kernel.NewUUID(), OrderID: kernel.NewUUID(),
			Subtotal: kernel.MustMoney(100_000), ShipFee: kernel.MustMoney(15_000),
		}

		applied, err := l.Apply(ctx, repo, req)

		require.NoError(t, err)
		assert.False(t, applied.Replayed)
		assert.Equal(t, int64(10_000), applied.Discount.Amount())
		assert.Equal(t, 1, v.CurrentUsage())
		assert.Equal(t, 1, repo.countUsages(v.ID()))
	})

	t.Run("same order twice counts once and returns the same discount", func(t *testing.T) {
		v := newSave10(t, shopID, 1)
		repo := newMemVoucherRepo(v)
		req := ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: kernel.NewUUID(), OrderID: kernel.NewUUID(),
			Subtotal: kernel.MustMoney(100_000),
		}

		first, err := l.Apply(ctx, repo, req)
		require.NoError(t, err)
		second, err := l.Apply(ctx, repo, req)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Discount, second.Discount)
		assert.Equal(t, 1, v.CurrentUsage())
		assert.Equal(t, 1, repo.countUsages(v.ID()))
		assert.Equal(t, 1, repo.updates)
	})

	t.Run("per user limit", func(t *testing.T) {
		v := newSave10(t, shopID, 1)
		repo := newMemVoucherRepo(v)
		userID := kernel.NewUUID()
		req := ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: userID, OrderID: kernel.NewUUID(),
			Subtotal: kernel.MustMoney(100_000),
		}
		_, err := l.Apply(ctx, repo, req)
		require.NoError(t, err)

		req.OrderID = kernel.NewUUID()
		_, err = l.Apply(ctx, repo, req)

		require.ErrorIs(t, err, voucher.ErrPerUserLimitReached)
		assert.Equal(t, 1, v.CurrentUsage())
	})

	t.Run("global limit keeps counter and rows in step", func(t *testing.T) {
		v := newSave10(t, shopID, 1)
		repo := newMemVoucherRepo(v)
		for range 5 {
			_, err := l.Apply(ctx, repo, ledger.ApplyRequest{
				VoucherID: v.ID(), ShopID: shopID, UserID: kernel.NewUUID(), OrderID: kernel.NewUUID(),
				Subtotal: kernel.MustMoney(100_000),
			})
			require.NoError(t, err)
		}

		_, err := l.Apply(ctx, repo, ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: kernel.NewUUID(), OrderID: kernel.NewUUID(),
			Subtotal: kernel.MustMoney(100_000),
		})

		require.ErrorIs(t, err, voucher.ErrUsageLimitReached)
		assert.Equal(t, 5, v.CurrentUsage())
		assert.Equal(t, 5, repo.countUsages(v.ID()))
	})

	t.Run("below minimum writes nothing", func(t *testing.T) {
		v := newSave10(t, shopID, 1)
		repo := newMemVoucherRepo(v)

		_, err := l.Apply(ctx, repo, ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: kernel.NewUUID(), OrderID: kernel.NewUUID(),
			Subtotal: kernel.MustMoney(49_999),
		})

		require.ErrorIs(t, err, voucher.ErrMinOrderNotMet)
		assert.Equal(t, 0, v.CurrentUsage())
		assert.Empty(t, repo.usages)
	})
}

func TestVoucherLedger_UsageCounterOnlyGrows(t *testing.T) {
	ctx := t.Context()
	l := ledger.NewVoucherLedger(kernel.FixedClock{At: now})
	shopID := kernel.NewUUID()
	v := newSave10(t, shopID, 2)
	repo := newMemVoucherRepo(v)
	userID := kernel.NewUUID()
	first, second := kernel.NewUUID(), kernel.NewUUID()

	seen := 0
	for _, orderID := range []kernel.UUID{first, first, second, first} {
		_, err := l.Apply(ctx, repo, ledger.ApplyRequest{
			VoucherID: v.ID(), ShopID: shopID, UserID: userID, OrderID: orderID,
			Subtotal: kernel.MustMoney(100_000),
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.CurrentUsage(), seen)
		assert.Equal(t, repo.countUsages(v.ID()), v.CurrentUsage())
		seen = v.CurrentUsage()
	}

	assert.Equal(t, 2, v.CurrentUsage())
	assert.Equal(t, 2, repo.countUsages(v.ID()))
}
