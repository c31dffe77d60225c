package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
)

// CartRepository stores one cart per customer.
type CartRepository interface {
	// Get returns the customer's cart or errs.ErrObjectNotFound when none was created yet.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)
	Add(ctx context.Context, aggregate *cart.Cart) error
	// Update replaces the cart items under a version check.
	Update(ctx context.Context, aggregate *cart.Cart) error
}

// ProductRepository is the authoritative catalog lookup.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
	// GetMany returns the products that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
	// Update persists stock and sold count under a version check.
	Update(ctx context.Context, aggregate *product.Product) error
}

type ShopRepository interface {
	Add(ctx context.Context, aggregate *shop.Shop) error
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)
}
