package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrCartIsNotConstructed = errors.New("cart must be created via NewCart or RestoreCart")

// EmptyCartError is returned by checkout when there is nothing to order for the requested shop.
type EmptyCartError struct {
	CustomerID kernel.UUID
	Reason     string
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("%s: cart of customer %s: %s", errs.ErrBusinessRuleViolation, e.CustomerID, e.Reason)
}

func (e *EmptyCartError) Unwrap() error {
	return errs.ErrBusinessRuleViolation
}

// Item is a product snapshot taken when the customer added it.
type Item struct {
	ProductID kernel.UUID
	ShopID    kernel.UUID
	Name      string
	UnitPrice kernel.Money
	ImageURL  string
	Quantity  int
	AddedAt   time.Time
}

func (i Item) validate() error {
	var errList []error
	if err := i.ProductID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := i.ShopID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(i.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if i.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", i.Quantity, 1, "unbounded"))
	}
	return errors.Join(errList...)
}

// Cart is an ordered list of items owned by one customer.
type Cart struct {
	customerID kernel.UUID
	items      []Item
	version    int64

	isConstructed bool
}

func NewCart(customerID kernel.UUID) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	return &Cart{customerID: customerID, items: make([]Item, 0), isConstructed: true}, nil
}

func RestoreCart(customerID kernel.UUID, items []Item, version int64) (*Cart, error) {
	c, err := NewCart(customerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.validate(); err != nil {
			return nil, err
		}
	}
	c.items = append(c.items, items...)
	c.version = version
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) CustomerID() kernel.UUID { return c.customerID }
func (c *Cart) Version() int64          { return c.version }
func (c *Cart) IncrementVersion()       { c.version++ }
func (c *Cart) IsEmpty() bool           { return len(c.items) == 0 }

func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// AddItem appends item or, when the product is already in the cart, adds to its
// quantity and refreshes the snapshot.
func (c *Cart) AddItem(item Item) error {
	if err := item.validate(); err != nil {
		return err
	}
	for i := range c.items {
		if c.items[i].ProductID.IsEqual(item.ProductID) {
			quantity := c.items[i].Quantity + item.Quantity
			addedAt := c.items[i].AddedAt
			c.items[i] = item
			c.items[i].Quantity = quantity
			c.items[i].AddedAt = addedAt
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

// RemoveItem drops a product; removing an absent product is a no-op and reports false.
func (c *Cart) RemoveItem(productID kernel.UUID) bool {
	for i := range c.items {
		if c.items[i].ProductID.IsEqual(productID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.items = make([]Item, 0)
}

// ItemsForCheckout returns the items to order from shopID or EmptyCartError when the
// cart is empty or holds products of another shop.
func (c *Cart) ItemsForCheckout(shopID kernel.UUID) ([]Item, error) {
	if c.IsEmpty() {
		return nil, &EmptyCartError{CustomerID: c.customerID, Reason: "cart is empty"}
	}
	for _, item := range c.items {
		if !item.ShopID.IsEqual(shopID) {
			return nil, &EmptyCartError{
				CustomerID: c.customerID,
				Reason:     fmt.Sprintf("product %s belongs to shop %s, not %s", item.ProductID, item.ShopID, shopID),
			}
		}
	}
	return c.Items(), nil
}
