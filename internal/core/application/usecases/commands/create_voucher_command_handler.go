package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/errs"
)

var (
	ErrNotShopOwner      = errs.NewInvalidStateError("only the shop owner may manage the shop")
	ErrVoucherCodeExists = errs.NewBusinessRuleError("voucher code already exists in the shop")
)

type CreateVoucherCommandHandler struct {
	uowFactory UoWFactory
	runner     TxRunner
}

func NewCreateVoucherCommandHandler(uowFactory UoWFactory, runner TxRunner) CreateVoucherCommandHandler {
	return CreateVoucherCommandHandler{
		uowFactory: uowFactory,
		runner:     runner,
	}
}

// Handle creates the voucher when the actor owns the shop (or is back office) and the
// code is free in that shop.
func (h CreateVoucherCommandHandler) Handle(ctx context.Context, command CreateVoucherCommand) (*voucher.Voucher, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *voucher.Voucher
	err := runInTx(ctx, h.runner, "create voucher", h.uowFactory.Create, func(uow UoW) error {
		params := command.Params()

		s, err := uow.ShopRepository().Get(ctx, params.ShopID)
		if err != nil {
			return err
		}
		owner := command.Owner()
		if !owner.Role().IsBackOffice() && !(owner.Role() == kernel.RoleOwner && s.OwnerID().IsEqual(owner.ID())) {
			return fmt.Errorf("%w: %s, shop %s", ErrNotShopOwner, owner, s.ID())
		}

		_, err = uow.VoucherRepository().GetByCode(ctx, s.ID(), params.Code)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrVoucherCodeExists, voucher.NormalizeCode(params.Code))
		case !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}

		v, err := voucher.NewVoucher(params)
		if err != nil {
			return err
		}
		if err = uow.VoucherRepository().Add(ctx, v); err != nil {
			return err
		}

		result = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
