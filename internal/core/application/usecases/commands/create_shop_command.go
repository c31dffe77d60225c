package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateShopCommandIsNotConstructed = errors.New(
	"CreateShopCommand must be created via NewCreateShopCommand constructor",
)

// CreateShopCommand opens a shop owned by the acting OWNER.
type CreateShopCommand struct {
	shopID  kernel.UUID
	owner   kernel.Actor
	name    string
	shipFee kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateShopCommand(shopID kernel.UUID, owner kernel.Actor, name string, shipFee kernel.Money) (CreateShopCommand, error) {
	var errList []error
	errList = append(errList, shopID.Validate(), owner.Validate())
	if owner.Role() != kernel.RoleOwner {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%s cannot open a shop", owner)))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shop name"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateShopCommand{}, err
	}

	return CreateShopCommand{
		shopID:  shopID,
		owner:   owner,
		name:    name,
		shipFee: shipFee,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShopCommand) Validate() error {
	return c.guard.Validate(ErrCreateShopCommandIsNotConstructed)
}

func (c CreateShopCommand) ShopID() kernel.UUID   { return c.shopID }
func (c CreateShopCommand) Owner() kernel.Actor   { return c.owner }
func (c CreateShopCommand) Name() string          { return c.name }
func (c CreateShopCommand) ShipFee() kernel.Money { return c.shipFee }
