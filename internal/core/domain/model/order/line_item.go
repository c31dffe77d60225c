package order

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LineItem is a product snapshot frozen at checkout. It is never re-read from the catalog.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

func NewLineItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	return LineItem{productID: productID, name: name, unitPrice: unitPrice, quantity: quantity}, nil
}

func (li LineItem) ProductID() kernel.UUID  { return li.productID }
func (li LineItem) Name() string            { return li.name }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }
func (li LineItem) Quantity() int           { return li.quantity }

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() (kernel.Money, error) {
	return li.unitPrice.MulInt(li.quantity)
}
