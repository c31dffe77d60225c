package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns the customer's cart for one shop into a PENDING order.
//
// The order id is generated by the caller and makes the command replay-safe:
// resubmitting the same command returns the order created the first time.
//
// Example:
//
//	address, _ := kernel.NewAddress("Ann Lee", "+84 900 000 000", "12 Tran Phu", "Da Nang")
//	cmd, err := NewCheckoutCommand(kernel.NewUUID(), customerID, shopID, address, "SAVE10")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct {
	orderID     kernel.UUID
	customerID  kernel.UUID
	shopID      kernel.UUID
	address     kernel.Address
	voucherCode string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates identities and address. An empty voucherCode means no voucher.
func NewCheckoutCommand(
	orderID, customerID, shopID kernel.UUID, address kernel.Address, voucherCode string,
) (CheckoutCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		shopID.Validate(),
		address.Validate(),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return CheckoutCommand{
		orderID:     orderID,
		customerID:  customerID,
		shopID:      shopID,
		address:     address,
		voucherCode: voucher.NormalizeCode(voucherCode),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CheckoutCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CheckoutCommand) ShopID() kernel.UUID     { return c.shopID }
func (c CheckoutCommand) Address() kernel.Address { return c.address }
func (c CheckoutCommand) VoucherCode() string     { return c.voucherCode }
func (c CheckoutCommand) HasVoucher() bool        { return c.voucherCode != "" }
