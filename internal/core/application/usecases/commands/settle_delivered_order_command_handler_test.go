package commands_test

import (
	"testing"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deliveredUnpaid builds a DELIVERED order directly on the aggregate, as if the process
// crashed after the status change but before the payout.
func deliveredUnpaid(t *testing.T, w *world) *order.Order {
	t.Helper()
	pho, err := order.NewLineItem(w.pho.ID(), w.pho.Name(), w.pho.Price(), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		CustomerID: w.customer.ID(),
		ShopID:     w.shop.ID(),
		OwnerID:    w.owner.ID(),
		Items:      []order.LineItem{pho},
		Address:    w.address,
		ShipFee:    w.shop.ShipFee(),
		PlacedAt:   now,
	})
	require.NoError(t, err)
	for _, next := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		require.NoError(t, o.Transition(w.owner, next, "", now))
	}
	require.NoError(t, o.AssignShipper(w.shipper, now))
	require.NoError(t, o.Transition(w.shipper, order.Delivered, "", now))
	o.PullDomainEvents()
	w.store.orders[o.ID()] = o
	return o
}

func newSettleHandler(w *world) commands.SettleDeliveredOrderCommandHandler {
	return commands.NewSettleDeliveredOrderCommandHandler(w.factory(), newRunner(nil), ledger.NewWalletLedger(clock))
}

func TestSettleDeliveredOrderCommandHandler_Handle_PaysOutOnce(t *testing.T) {
	w := newWorld(t)
	o := deliveredUnpaid(t, w)
	require.False(t, o.IsPaidOut())
	cmd, err := commands.NewSettleDeliveredOrderCommand(o.ID())
	require.NoError(t, err)

	settled, err := newSettleHandler(w).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, settled)
	assert.True(t, o.IsPaidOut())
	assert.Equal(t, int64(120_000), w.store.wallet(w.owner.ID(), wallet.TypeShop).Balance())
	assert.Equal(t, int64(15_000), w.store.wallet(w.shipper.ID(), wallet.TypeShipper).Balance())
	assert.Equal(t, 2, w.pho.SoldCount())

	settled, err = newSettleHandler(w).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, settled)
	assert.Equal(t, int64(120_000), w.store.wallet(w.owner.ID(), wallet.TypeShop).Balance())
	assert.Equal(t, int64(15_000), w.store.wallet(w.shipper.ID(), wallet.TypeShipper).Balance())
	assert.Equal(t, 2, w.pho.SoldCount())
}

func TestSettleDeliveredOrderCommandHandler_Handle_RerunAfterDeliveryIsNoop(t *testing.T) {
	w := newWorld(t)
	o := w.delivered(t)
	shopWallet := w.store.wallet(w.owner.ID(), wallet.TypeShop)
	before := shopWallet.Balance()
	entries := len(w.store.entries[shopWallet.ID()])

	cmd, err := commands.NewSettleDeliveredOrderCommand(o.ID())
	require.NoError(t, err)
	settled, err := newSettleHandler(w).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, settled)
	assert.Equal(t, before, shopWallet.Balance())
	assert.Len(t, w.store.entries[shopWallet.ID()], entries)
}

func TestSettleDeliveredOrderCommandHandler_Handle_NotDelivered(t *testing.T) {
	w := newWorld(t)
	o := w.checkout(t, "")
	cmd, err := commands.NewSettleDeliveredOrderCommand(o.ID())
	require.NoError(t, err)

	_, err = newSettleHandler(w).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrNotDelivered)
	assert.False(t, o.IsPaidOut())
}
