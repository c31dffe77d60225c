package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
	"marketplace/internal/pkg/errs"
)

// ErrProductNotInShop is returned when a cart item points at another shop's product.
var ErrProductNotInShop = errs.NewBusinessRuleError("product does not belong to the shop")

// Quote is the result of pricing a cart for one shop.
type Quote struct {
	Items    []order.LineItem
	Subtotal kernel.Money
	ShipFee  kernel.Money
	// Reserved are the products whose stock was decremented; the caller persists them.
	Reserved []*product.Product
}

// CheckoutPricer is a domain service that prices a cart against live catalog records.
//
// Cart prices are display snapshots and are ignored: each line is priced from the
// product record, which must be active, belong to the shop and have enough stock.
// Stock is reserved on the products passed in.
//
// Example usage:
//
//	quote, err := services.NewCheckoutPricer().Price(s, items, products)
//	if err != nil {
//	    // out of stock, inactive product or closed shop
//	}
type CheckoutPricer struct{}

func NewCheckoutPricer() CheckoutPricer {
	return CheckoutPricer{}
}

// Price returns the frozen line items and subtotal for items bought from s.
func (CheckoutPricer) Price(s *shop.Shop, items []cart.Item, products []*product.Product) (Quote, error) {
	if err := s.CheckOpen(); err != nil {
		return Quote{}, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return Quote{}, err
		}
		byID[p.ID()] = p
	}

	quote := Quote{
		Items:    make([]order.LineItem, 0, len(items)),
		ShipFee:  s.ShipFee(),
		Reserved: make([]*product.Product, 0, len(items)),
	}

	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return Quote{}, errs.NewObjectNotFoundError("product", item.ProductID.String())
		}
		if !p.ShopID().IsEqual(s.ID()) {
			return Quote{}, fmt.Errorf("%w: %s", ErrProductNotInShop, p.ID())
		}
		if err := p.Reserve(item.Quantity); err != nil {
			return Quote{}, err
		}

		line, err := order.NewLineItem(p.ID(), p.Name(), p.Price(), item.Quantity)
		if err != nil {
			return Quote{}, err
		}
		quote.Items = append(quote.Items, line)
		quote.Reserved = append(quote.Reserved, p)
	}

	subtotal, err := order.Subtotal(quote.Items)
	if err != nil {
		return Quote{}, err
	}
	quote.Subtotal = subtotal

	return quote, nil
}
