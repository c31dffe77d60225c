package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// AddCartItemCommandHandler snapshots the product into the customer's cart.
// The product must be active and have enough stock for the resulting quantity;
// stock itself is only reserved at checkout.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	runner     TxRunner
	clock      kernel.Clock
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, runner TxRunner, clock kernel.Clock) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
		clock:      clock,
	}
}

func (h AddCartItemCommandHandler) Handle(ctx context.Context, command AddCartItemCommand) (*cart.Cart, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *cart.Cart
	err := runInTx(ctx, h.runner, "add cart item", h.uowFactory.Create, func(uow CartUoW) error {
		p, err := uow.ProductRepository().Get(ctx, command.ProductID())
		if err != nil {
			return err
		}

		c, isNew, err := loadOrCreateCart(ctx, uow, command.CustomerID())
		if err != nil {
			return err
		}

		quantity := command.Quantity()
		for _, item := range c.Items() {
			if item.ProductID.IsEqual(p.ID()) {
				quantity += item.Quantity
			}
		}
		if err = p.CheckAvailable(quantity); err != nil {
			return err
		}

		if err = c.AddItem(cart.Item{
			ProductID: p.ID(),
			ShopID:    p.ShopID(),
			Name:      p.Name(),
			UnitPrice: p.Price(),
			ImageURL:  p.ImageURL(),
			Quantity:  command.Quantity(),
			AddedAt:   h.clock.Now(),
		}); err != nil {
			return err
		}

		if isNew {
			err = uow.CartRepository().Add(ctx, c)
		} else {
			err = uow.CartRepository().Update(ctx, c)
		}
		if err != nil {
			return err
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func loadOrCreateCart(ctx context.Context, uow CartRepoFactory, customerID kernel.UUID) (*cart.Cart, bool, error) {
	c, err := uow.CartRepository().Get(ctx, customerID)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	c, err = cart.NewCart(customerID)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}
