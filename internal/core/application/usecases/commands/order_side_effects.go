package commands

import (
	"context"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// settle pays out a DELIVERED order once: it credits the owner's shop wallet and the
// shipper's wallet with their shares and counts the items as sold. The paidOut flag is
// set on o and persisted by the caller in the same transaction.
// It reports false when the order was already paid out.
func settle(ctx context.Context, uow UoW, walletLedger ledger.WalletLedger, o *order.Order) (bool, error) {
	split, ok, err := o.Settle()
	if err != nil || !ok {
		return false, err
	}

	cause := wallet.OrderEarning(o.ID())
	if !split.OwnerShare.IsZero() {
		if _, err = walletLedger.Credit(ctx, uow.WalletRepository(),
			split.OwnerID, wallet.TypeShop, split.OwnerShare, cause); err != nil {
			return false, err
		}
	}
	if !split.ShipperShare.IsZero() {
		if _, err = walletLedger.Credit(ctx, uow.WalletRepository(),
			split.ShipperID, wallet.TypeShipper, split.ShipperShare, cause); err != nil {
			return false, err
		}
	}

	err = forEachOrderedProduct(ctx, uow, o, func(p *product.Product, quantity int) error {
		return p.RecordSale(quantity)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// compensateCancellation returns the reserved stock of a cancelled order. A voucher
// usage is never given back: the usage counter only grows.
func compensateCancellation(ctx context.Context, uow UoW, o *order.Order) error {
	return forEachOrderedProduct(ctx, uow, o, func(p *product.Product, quantity int) error {
		return p.Release(quantity)
	})
}

// forEachOrderedProduct loads the products of o's line items, applies fn with the
// ordered quantity and persists each product.
func forEachOrderedProduct(
	ctx context.Context, uow UoW, o *order.Order, fn func(p *product.Product, quantity int) error,
) error {
	items := o.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}

	for _, item := range items {
		found := false
		for _, p := range products {
			if !p.ID().IsEqual(item.ProductID()) {
				continue
			}
			found = true
			if err = fn(p, item.Quantity()); err != nil {
				return err
			}
			if err = uow.ProductRepository().Update(ctx, p); err != nil {
				return err
			}
		}
		if !found {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
	}
	return nil
}
