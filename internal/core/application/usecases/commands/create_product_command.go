package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand lists a product in a shop with an initial stock.
type CreateProductCommand struct {
	productID kernel.UUID
	shopID    kernel.UUID
	owner     kernel.Actor
	name      string
	price     kernel.Money
	stock     int

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID, shopID kernel.UUID, owner kernel.Actor, name string, price kernel.Money, stock int,
) (CreateProductCommand, error) {
	var errList []error
	errList = append(errList, productID.Validate(), shopID.Validate(), owner.Validate())
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if price.IsZero() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("price", price.Amount(), 1, "unbounded"))
	}
	if stock < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		productID: productID,
		shopID:    shopID,
		owner:     owner,
		name:      name,
		price:     price,
		stock:     stock,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateProductCommand) ShopID() kernel.UUID    { return c.shopID }
func (c CreateProductCommand) Owner() kernel.Actor    { return c.owner }
func (c CreateProductCommand) Name() string           { return c.name }
func (c CreateProductCommand) Price() kernel.Money    { return c.price }
func (c CreateProductCommand) Stock() int             { return c.stock }
