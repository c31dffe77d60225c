package commands

import (
	"context"

	"marketplace/internal/core/domain/model/shop"
)

type CreateShopCommandHandler struct {
	uowFactory UoWFactory
	runner     TxRunner
}

func NewCreateShopCommandHandler(uowFactory UoWFactory, runner TxRunner) CreateShopCommandHandler {
	return CreateShopCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
	}
}

// Handle is replay-safe: a shop id that already exists is reported as a conflict by the store.
func (h CreateShopCommandHandler) Handle(ctx context.Context, command CreateShopCommand) (*shop.Shop, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *shop.Shop
	err := runInTx(ctx, h.runner, "create shop", h.uowFactory.Create, func(uow UoW) error {
		s, err := shop.NewShop(command.ShopID(), command.Owner().ID(), command.Name(), command.ShipFee(), true)
		if err != nil {
			return err
		}
		if err = uow.ShopRepository().Add(ctx, s); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
