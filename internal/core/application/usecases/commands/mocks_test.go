package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/retry"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testPolicy = retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

type eventSource interface {
	PullDomainEvents() []kernel.DomainEvent
}

// memStore backs the in-memory repositories. Get returns the stored pointer, so a
// store survives across attempts the way committed rows would.
type memStore struct {
	orders   map[kernel.UUID]*order.Order
	carts    map[kernel.UUID]*cart.Cart
	products map[kernel.UUID]*product.Product
	shops    map[kernel.UUID]*shop.Shop
	vouchers map[kernel.UUID]*voucher.Voucher
	usages   map[string]*voucher.Usage
	wallets  map[string]*wallet.Wallet
	entries  map[kernel.UUID][]*wallet.LedgerEntry
	payouts  map[kernel.UUID]*wallet.PayoutRequest

	tracked []eventSource

	// orderUpdateErrs are returned, in order, by the next OrderRepository.Update calls.
	orderUpdateErrs []error
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[kernel.UUID]*order.Order),
		carts:    make(map[kernel.UUID]*cart.Cart),
		products: make(map[kernel.UUID]*product.Product),
		shops:    make(map[kernel.UUID]*shop.Shop),
		vouchers: make(map[kernel.UUID]*voucher.Voucher),
		usages:   make(map[string]*voucher.Usage),
		wallets:  make(map[string]*wallet.Wallet),
		entries:  make(map[kernel.UUID][]*wallet.LedgerEntry),
		payouts:  make(map[kernel.UUID]*wallet.PayoutRequest),
	}
}

func (s *memStore) track(a eventSource) { s.tracked = append(s.tracked, a) }

func (s *memStore) pullEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, a := range s.tracked {
		events = append(events, a.PullDomainEvents()...)
	}
	s.tracked = nil
	return events
}

func (s *memStore) wallet(userID kernel.UUID, t wallet.Type) *wallet.Wallet {
	return s.wallets[userID.String()+string(t)]
}

func (s *memStore) ledgerSum(walletID kernel.UUID) int64 {
	var sum int64
	for _, e := range s.entries[walletID] {
		sum += e.Amount()
	}
	return sum
}

func (s *memStore) usageCount(voucherID kernel.UUID) int {
	n := 0
	for _, u := range s.usages {
		if u.VoucherID().IsEqual(voucherID) {
			n++
		}
	}
	return n
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	if _, ok := r.s.orders[o.ID()]; ok {
		return errs.NewConcurrentModificationError("order", o.ID())
	}
	r.s.orders[o.ID()] = o
	r.s.track(o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	if len(r.s.orderUpdateErrs) > 0 {
		err := r.s.orderUpdateErrs[0]
		r.s.orderUpdateErrs = r.s.orderUpdateErrs[1:]
		if err != nil {
			return err
		}
	}
	o.IncrementVersion()
	r.s.orders[o.ID()] = o
	r.s.track(o)
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

type memCartRepo struct{ s *memStore }

func (r memCartRepo) Get(_ context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	c, ok := r.s.carts[customerID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cart", customerID.String())
	}
	return c, nil
}

func (r memCartRepo) Add(_ context.Context, c *cart.Cart) error {
	r.s.carts[c.CustomerID()] = c
	return nil
}

func (r memCartRepo) Update(_ context.Context, c *cart.Cart) error {
	c.IncrementVersion()
	r.s.carts[c.CustomerID()] = c
	return nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Add(_ context.Context, p *product.Product) error {
	r.s.products[p.ID()] = p
	return nil
}

func (r memProductRepo) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

func (r memProductRepo) GetMany(_ context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	var out []*product.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProductRepo) Update(_ context.Context, p *product.Product) error {
	p.IncrementVersion()
	return nil
}

type memShopRepo struct{ s *memStore }

func (r memShopRepo) Add(_ context.Context, sh *shop.Shop) error {
	r.s.shops[sh.ID()] = sh
	return nil
}

func (r memShopRepo) Get(_ context.Context, id kernel.UUID) (*shop.Shop, error) {
	sh, ok := r.s.shops[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shop", id.String())
	}
	return sh, nil
}

type memVoucherRepo struct{ s *memStore }

func (r memVoucherRepo) Add(_ context.Context, v *voucher.Voucher) error {
	r.s.vouchers[v.ID()] = v
	return nil
}

func (r memVoucherRepo) Get(_ context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	v, ok := r.s.vouchers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("voucher", id.String())
	}
	return v, nil
}

func (r memVoucherRepo) GetByCode(_ context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error) {
	for _, v := range r.s.vouchers {
		if v.ShopID().IsEqual(shopID) && v.Code() == voucher.NormalizeCode(code) {
			return v, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("voucher", code)
}

func (r memVoucherRepo) Update(_ context.Context, v *voucher.Voucher) error {
	v.IncrementVersion()
	return nil
}

func (r memVoucherRepo) GetUsage(_ context.Context, key string) (*voucher.Usage, error) {
	u, ok := r.s.usages[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("voucher usage", key)
	}
	return u, nil
}

func (r memVoucherRepo) AddUsage(_ context.Context, u *voucher.Usage) error {
	r.s.usages[u.Key()] = u
	return nil
}

func (r memVoucherRepo) CountUsagesByUser(_ context.Context, voucherID, userID kernel.UUID) (int, error) {
	n := 0
	for _, u := range r.s.usages {
		if u.VoucherID().IsEqual(voucherID) && u.UserID().IsEqual(userID) {
			n++
		}
	}
	return n, nil
}

type memWalletRepo struct{ s *memStore }

func (r memWalletRepo) Get(_ context.Context, userID kernel.UUID, t wallet.Type) (*wallet.Wallet, error) {
	w := r.s.wallet(userID, t)
	if w == nil {
		return nil, errs.NewObjectNotFoundError("wallet", userID.String())
	}
	return w, nil
}

func (r memWalletRepo) Add(_ context.Context, w *wallet.Wallet) error {
	r.s.wallets[w.UserID().String()+string(w.Type())] = w
	r.s.entries[w.ID()] = append(r.s.entries[w.ID()], w.PullNewEntries()...)
	return nil
}

func (r memWalletRepo) Update(_ context.Context, w *wallet.Wallet) error {
	w.IncrementVersion()
	r.s.entries[w.ID()] = append(r.s.entries[w.ID()], w.PullNewEntries()...)
	return nil
}

func (r memWalletRepo) ListEntries(_ context.Context, walletID kernel.UUID) ([]*wallet.LedgerEntry, error) {
	return r.s.entries[walletID], nil
}

type memPayoutRepo struct{ s *memStore }

func (r memPayoutRepo) Add(_ context.Context, p *wallet.PayoutRequest) error {
	r.s.payouts[p.ID()] = p
	r.s.track(p)
	return nil
}

func (r memPayoutRepo) Get(_ context.Context, id kernel.UUID) (*wallet.PayoutRequest, error) {
	p, ok := r.s.payouts[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payout", id.String())
	}
	return p, nil
}

func (r memPayoutRepo) Update(_ context.Context, p *wallet.PayoutRequest) error {
	p.IncrementVersion()
	r.s.track(p)
	return nil
}

// MockUoW records the transaction calls and serves repositories over a memStore.
type MockUoW struct {
	mock.Mock
	store *memStore
}

func newMockUoW(store *memStore, commitErr error) *MockUoW {
	uow := &MockUoW{store: store}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(commitErr)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PullDomainEvents() []kernel.DomainEvent     { return m.store.pullEvents() }
func (m *MockUoW) OrderRepository() ports.OrderRepository     { return memOrderRepo{m.store} }
func (m *MockUoW) CartRepository() ports.CartRepository       { return memCartRepo{m.store} }
func (m *MockUoW) ProductRepository() ports.ProductRepository { return memProductRepo{m.store} }
func (m *MockUoW) ShopRepository() ports.ShopRepository       { return memShopRepo{m.store} }
func (m *MockUoW) VoucherRepository() ports.VoucherRepository { return memVoucherRepo{m.store} }
func (m *MockUoW) WalletRepository() ports.WalletRepository   { return memWalletRepo{m.store} }
func (m *MockUoW) PayoutRepository() ports.PayoutRepository   { return memPayoutRepo{m.store} }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newRunner(publisher ports.EventPublisher) commands.TxRunner {
	return commands.NewTxRunner(testPolicy, publisher, zap.NewNop())
}
