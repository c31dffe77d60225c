package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock = kernel.FixedClock{At: now}
)

// world is a shop with two products, a SAVE10 voucher and the three parties of an order.
type world struct {
	store    *memStore
	customer kernel.Actor
	owner    kernel.Actor
	shipper  kernel.Actor
	admin    kernel.Actor
	shop     *shop.Shop
	pho      *product.Product
	tea      *product.Product
	save10   *voucher.Voucher
	address  kernel.Address
}

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		store:    newMemStore(),
		customer: mustActor(t, kernel.RoleCustomer),
		owner:    mustActor(t, kernel.RoleOwner),
		shipper:  mustActor(t, kernel.RoleShipper),
		admin:    mustActor(t, kernel.RoleAdmin),
	}

	var err error
	w.shop, err = shop.NewShop(kernel.NewUUID(), w.owner.ID(), "Quán Bà Tư", kernel.MustMoney(15_000), true)
	require.NoError(t, err)
	w.store.shops[w.shop.ID()] = w.shop

	w.pho, err = product.NewProduct(kernel.NewUUID(), w.shop.ID(), "Phở bò", kernel.MustMoney(60_000), 10)
	require.NoError(t, err)
	w.tea, err = product.NewProduct(kernel.NewUUID(), w.shop.ID(), "Trà sữa", kernel.MustMoney(40_000), 10)
	require.NoError(t, err)
	w.store.products[w.pho.ID()] = w.pho
	w.store.products[w.tea.ID()] = w.tea

	w.save10, err = voucher.NewVoucher(voucher.Params{
		ID:                kernel.NewUUID(),
		ShopID:            w.shop.ID(),
		Code:              "SAVE10",
		DiscountType:      voucher.Percentage,
		Value:             10,
		MinOrderAmount:    kernel.MustMoney(50_000),
		UsageLimit:        5,
		UsageLimitPerUser: 1,
		ValidFrom:         now.Add(-24 * time.Hour),
		ValidTo:           now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	w.store.vouchers[w.save10.ID()] = w.save10

	w.address, err = kernel.NewAddress("Lan", "0901234567", "12 Le Loi", "Hue")
	require.NoError(t, err)

	w.fillCart(t)
	return w
}

// fillCart puts one phở and one trà sữa, 100,000 in total, in the customer's cart.
func (w *world) fillCart(t *testing.T) {
	t.Helper()
	c, err := cart.NewCart(w.customer.ID())
	require.NoError(t, err)
	for _, p := range []*product.Product{w.pho, w.tea} {
		require.NoError(t, c.AddItem(cart.Item{
			ProductID: p.ID(), ShopID: p.ShopID(), Name: p.Name(), UnitPrice: p.Price(), Quantity: 1, AddedAt: now,
		}))
	}
	w.store.carts[w.customer.ID()] = c
}

// factory returns a UoWFactory whose units of work serve the world's store.
func (w *world) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(newMockUoW(w.store, nil))
	return f
}

func (w *world) checkoutHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(w.factory(), newRunner(nil), ledger.NewVoucherLedger(clock), clock)
}

func (w *world) transitionHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(w.factory(), newRunner(nil),
		ledger.NewWalletLedger(clock), clock)
}

func (w *world) checkout(t *testing.T, voucherCode string) *order.Order {
	t.Helper()
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), w.customer.ID(), w.shop.ID(), w.address, voucherCode)
	require.NoError(t, err)
	o, err := w.checkoutHandler().Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (w *world) transition(t *testing.T, o *order.Order, actor kernel.Actor, target order.Status) {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, target, "")
	require.NoError(t, err)
	_, err = w.transitionHandler().Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (w *world) accept(t *testing.T, o *order.Order, shipper kernel.Actor) {
	t.Helper()
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(newMockUoW(w.store, nil))
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), shipper.ID())
	require.NoError(t, err)
	_, err = commands.NewAcceptOrderCommandHandler(f, newRunner(nil), clock).Handle(t.Context(), cmd)
	require.NoError(t, err)
}

// ready checks out with SAVE10 and lets the owner move the order to READY.
func (w *world) ready(t *testing.T) *order.Order {
	t.Helper()
	o := w.checkout(t, "SAVE10")
	for _, next := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		w.transition(t, o, w.owner, next)
	}
	return o
}

// delivered takes an order all the way through delivery.
func (w *world) delivered(t *testing.T) *order.Order {
	t.Helper()
	o := w.ready(t)
	w.accept(t, o, w.shipper)
	w.transition(t, o, w.shipper, order.Delivered)
	return o
}
