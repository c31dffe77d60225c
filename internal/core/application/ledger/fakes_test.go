package ledger_test

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type memVoucherRepo struct {
	vouchers map[kernel.UUID]*voucher.Voucher
	usages   map[string]*voucher.Usage
	updates  int
}

func newMemVoucherRepo(vs ...*voucher.Voucher) *memVoucherRepo {
	r := &memVoucherRepo{
		vouchers: make(map[kernel.UUID]*voucher.Voucher),
		usages:   make(map[string]*voucher.Usage),
	}
	for _, v := range vs {
		r.vouchers[v.ID()] = v
	}
	return r
}

func (r *memVoucherRepo) Add(_ context.Context, v *voucher.Voucher) error {
	r.vouchers[v.ID()] = v
	return nil
}

func (r *memVoucherRepo) Get(_ context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	v, ok := r.vouchers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("voucher", id.String())
	}
	return v, nil
}

func (r *memVoucherRepo) GetByCode(_ context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error) {
	for _, v := range r.vouchers {
		if v.ShopID().IsEqual(shopID) && v.Code() == voucher.NormalizeCode(code) {
			return v, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("voucher", code)
}

func (r *memVoucherRepo) Update(_ context.Context, v *voucher.Voucher) error {
	r.updates++
	r.vouchers[v.ID()] = v
	return nil
}

func (r *memVoucherRepo) GetUsage(_ context.Context, key string) (*voucher.Usage, error) {
	u, ok := r.usages[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("voucher usage", key)
	}
	return u, nil
}

func (r *memVoucherRepo) AddUsage(_ context.Context, u *voucher.Usage) error {
	if _, ok := r.usages[u.Key()]; ok {
		return errs.NewConcurrentModificationError("voucher usage", u.Key())
	}
	r.usages[u.Key()] = u
	return nil
}

func (r *memVoucherRepo) CountUsagesByUser(_ context.Context, voucherID, userID kernel.UUID) (int, error) {
	n := 0
	for _, u := range r.usages {
		if u.VoucherID().IsEqual(voucherID) && u.UserID().IsEqual(userID) {
			n++
		}
	}
	return n, nil
}

func (r *memVoucherRepo) countUsages(voucherID kernel.UUID) int {
	n := 0
	for _, u := range r.usages {
		if u.VoucherID().IsEqual(voucherID) {
			n++
		}
	}
	return n
}

type walletKey struct {
	userID kernel.UUID
	typ    wallet.Type
}

type memWalletRepo struct {
	wallets map[walletKey]*wallet.Wallet
	entries map[kernel.UUID][]*wallet.LedgerEntry
	adds    int
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{
		wallets: make(map[walletKey]*wallet.Wallet),
		entries: make(map[kernel.UUID][]*wallet.LedgerEntry),
	}
}

func (r *memWalletRepo) Get(_ context.Context, userID kernel.UUID, t wallet.Type) (*wallet.Wallet, error) {
	w, ok := r.wallets[walletKey{userID, t}]
	if !ok {
		return nil, errs.NewObjectNotFoundError("wallet", userID.String())
	}
	return w, nil
}

func (r *memWalletRepo) Add(_ context.Context, w *wallet.Wallet) error {
	r.adds++
	r.wallets[walletKey{w.UserID(), w.Type()}] = w
	r.entries[w.ID()] = append(r.entries[w.ID()], w.PullNewEntries()...)
	return nil
}

func (r *memWalletRepo) Update(_ context.Context, w *wallet.Wallet) error {
	w.IncrementVersion()
	r.entries[w.ID()] = append(r.entries[w.ID()], w.PullNewEntries()...)
	return nil
}

func (r *memWalletRepo) ListEntries(_ context.Context, walletID kernel.UUID) ([]*wallet.LedgerEntry, error) {
	return r.entries[walletID], nil
}

func (r *memWalletRepo) ledgerSum(walletID kernel.UUID) int64 {
	var sum int64
	for _, e := range r.entries[walletID] {
		sum += e.Amount()
	}
	return sum
}
