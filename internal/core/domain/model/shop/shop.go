// Package shop holds the seller record checkout reads for ownership and shipping fee.
package shop

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrShopIsClosed = errs.NewBusinessRuleError("shop is not accepting orders")

type Shop struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string
	shipFee kernel.Money
	active  bool
}

func NewShop(id, ownerID kernel.UUID, name string, shipFee kernel.Money, active bool) (*Shop, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := ownerID.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shop name"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return &Shop{id: id, ownerID: ownerID, name: name, shipFee: shipFee, active: active}, nil
}

func (s *Shop) ID() kernel.UUID       { return s.id }
func (s *Shop) OwnerID() kernel.UUID  { return s.ownerID }
func (s *Shop) Name() string          { return s.name }
func (s *Shop) ShipFee() kernel.Money { return s.shipFee }
func (s *Shop) IsActive() bool        { return s.active }

// CheckOpen fails for a deactivated shop.
func (s *Shop) CheckOpen() error {
	if !s.active {
		return fmt.Errorf("%w: %s", ErrShopIsClosed, s.id)
	}
	return nil
}
