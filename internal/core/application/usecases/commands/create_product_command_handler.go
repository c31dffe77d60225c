package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory UoWFactory
	runner     TxRunner
}

func NewCreateProductCommandHandler(uowFactory UoWFactory, runner TxRunner) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
	}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, command CreateProductCommand) (*product.Product, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *product.Product
	err := runInTx(ctx, h.runner, "create product", h.uowFactory.Create, func(uow UoW) error {
		s, err := uow.ShopRepository().Get(ctx, command.ShopID())
		if err != nil {
			return err
		}
		owner := command.Owner()
		if !owner.Role().IsBackOffice() && !(owner.Role() == kernel.RoleOwner && s.OwnerID().IsEqual(owner.ID())) {
			return fmt.Errorf("%w: %s, shop %s", ErrNotShopOwner, owner, s.ID())
		}

		p, err := product.NewProduct(command.ProductID(), s.ID(), command.Name(), command.Price(), command.Stock())
		if err != nil {
			return err
		}
		if err = uow.ProductRepository().Add(ctx, p); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
