package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIDTaken is returned when a checkout reuses an order id that belongs to
// another customer or shop.
var ErrOrderIDTaken = errs.NewValueIsInvalidError("order id")

// CheckoutCommandHandler builds an order from a cart in a single transaction.
//
// Within one transaction it reads the cart, prices every item from the product
// record and reserves stock, applies the voucher, writes the order and clears the
// cart. Any failure leaves all of them untouched; a conflict with a concurrent
// writer retries the whole checkout.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	var empty *cart.EmptyCartError
//	switch {
//	case errors.As(err, &empty):
//	    // nothing to order from this shop
//	case errors.Is(err, voucher.ErrUsageLimitReached):
//	    // voucher exhausted, no order was created
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // retries exhausted; safe to resubmit the same command
//	}
type CheckoutCommandHandler struct {
	uowFactory    UoWFactory
	runner        TxRunner
	voucherLedger ledger.VoucherLedger
	pricer        services.CheckoutPricer
	clock         kernel.Clock
}

func NewCheckoutCommandHandler(
	uowFactory UoWFactory, runner TxRunner, voucherLedger ledger.VoucherLedger, clock kernel.Clock,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:    uowFactory,
		runner:        runner,
		voucherLedger: voucherLedger,
		pricer:        services.NewCheckoutPricer(),
		clock:         clock,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := runInTx(ctx, h.runner, "checkout", h.uowFactory.Create, func(uow UoW) error {
		o, err := h.checkout(ctx, uow, command)
		if err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h CheckoutCommandHandler) checkout(ctx context.Context, uow UoW, command CheckoutCommand) (*order.Order, error) {
	existing, err := uow.OrderRepository().Get(ctx, command.OrderID())
	switch {
	case err == nil:
		if existing.IsCustomer(command.CustomerID()) && existing.ShopID().IsEqual(command.ShopID()) {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %s is used by another checkout", ErrOrderIDTaken, command.OrderID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	c, err := uow.CartRepository().Get(ctx, command.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, &cart.EmptyCartError{CustomerID: command.CustomerID(), Reason: "cart is empty"}
	}
	if err != nil {
		return nil, err
	}

	items, err := c.ItemsForCheckout(command.ShopID())
	if err != nil {
		return nil, err
	}

	s, err := uow.ShopRepository().Get(ctx, command.ShopID())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Price(s, items, products)
	if err != nil {
		return nil, err
	}

	params := order.NewOrderParams{
		ID:         command.OrderID(),
		CustomerID: command.CustomerID(),
		ShopID:     s.ID(),
		OwnerID:    s.OwnerID(),
		Items:      quote.Items,
		Address:    command.Address(),
		Discount:   kernel.Zero,
		ShipFee:    quote.ShipFee,
		PlacedAt:   h.clock.Now(),
	}

	if command.HasVoucher() {
		v, vErr := uow.VoucherRepository().GetByCode(ctx, s.ID(), command.VoucherCode())
		if vErr != nil {
			return nil, vErr
		}
		applied, vErr := h.voucherLedger.Apply(ctx, uow.VoucherRepository(), ledger.ApplyRequest{
			VoucherID: v.ID(),
			ShopID:    s.ID(),
			UserID:    command.CustomerID(),
			OrderID:   command.OrderID(),
			Subtotal:  quote.Subtotal,
			ShipFee:   quote.ShipFee,
		})
		if vErr != nil {
			return nil, vErr
		}
		voucherID := v.ID()
		params.Discount = applied.Discount
		params.VoucherID = &voucherID
		params.VoucherCode = v.Code()
	}

	o, err := order.NewOrder(params)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	for _, p := range quote.Reserved {
		if err = uow.ProductRepository().Update(ctx, p); err != nil {
			return nil, err
		}
	}

	c.Clear()
	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	return o, nil
}
