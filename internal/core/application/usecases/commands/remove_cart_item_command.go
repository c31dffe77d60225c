package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand drops a product from the customer's cart.
type RemoveCartItemCommand struct {
	customerID kernel.UUID
	productID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(customerID, productID kernel.UUID) (RemoveCartItemCommand, error) {
	if err := errors.Join(customerID.Validate(), productID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return RemoveCartItemCommand{
		customerID: customerID,
		productID:  productID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) CustomerID() kernel.UUID { return c.customerID }
func (c RemoveCartItemCommand) ProductID() kernel.UUID  { return c.productID }
