package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
)

type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	runner     TxRunner
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory, runner TxRunner) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
	}
}

// Handle removes the product; a product that is not in the cart leaves it untouched.
// A customer without a cart gets errs.ErrObjectNotFound.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, command RemoveCartItemCommand) (*cart.Cart, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *cart.Cart
	err := runInTx(ctx, h.runner, "remove cart item", h.uowFactory.Create, func(uow CartUoW) error {
		c, err := uow.CartRepository().Get(ctx, command.CustomerID())
		if err != nil {
			return err
		}

		if c.RemoveItem(command.ProductID()) {
			if err = uow.CartRepository().Update(ctx, c); err != nil {
				return err
			}
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
