// Package product holds the authoritative catalog record that checkout prices against.
package product

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrProductIsNotConstructed = errors.New("product must be created via NewProduct or RestoreProduct")
	ErrUnavailable             = errs.NewBusinessRuleError("product is not available")
)

// OutOfStockError is returned when a reservation exceeds the remaining stock.
type OutOfStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d in stock, %d requested",
		errs.ErrBusinessRuleViolation, e.ProductID, e.Available, e.Requested)
}

func (e *OutOfStockError) Unwrap() error {
	return errs.ErrBusinessRuleViolation
}

type Product struct {
	id        kernel.UUID
	shopID    kernel.UUID
	name      string
	price     kernel.Money
	imageURL  string
	stock     int
	soldCount int
	active    bool
	version   int64

	isConstructed bool
}

func NewProduct(id, shopID kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := shopID.Validate(); err != nil {
		errList = append(errList, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if stock < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		shopID:        shopID,
		name:          name,
		price:         price,
		stock:         stock,
		active:        true,
		isConstructed: true,
	}, nil
}

func RestoreProduct(
	id, shopID kernel.UUID, name string, price kernel.Money, imageURL string,
	stock, soldCount int, active bool, version int64,
) (*Product, error) {
	p, err := NewProduct(id, shopID, name, price, stock)
	if err != nil {
		return nil, err
	}
	if soldCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("sold count", soldCount, 0, "unbounded")
	}
	p.imageURL = imageURL
	p.soldCount = soldCount
	p.active = active
	p.version = version
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) ShopID() kernel.UUID { return p.shopID }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) ImageURL() string    { return p.imageURL }
func (p *Product) Stock() int          { return p.stock }
func (p *Product) SoldCount() int      { return p.soldCount }
func (p *Product) IsActive() bool      { return p.active }
func (p *Product) Version() int64      { return p.version }
func (p *Product) IncrementVersion()   { p.version++ }

// CheckAvailable fails when the product is inactive or has fewer than quantity in stock.
func (p *Product) CheckAvailable(quantity int) error {
	if !p.active {
		return fmt.Errorf("%w: %s", ErrUnavailable, p.id)
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, p.stock)
	}
	if quantity > p.stock {
		return &OutOfStockError{ProductID: p.id, Requested: quantity, Available: p.stock}
	}
	return nil
}

// Reserve takes quantity out of stock at checkout.
func (p *Product) Reserve(quantity int) error {
	if err := p.CheckAvailable(quantity); err != nil {
		return err
	}
	p.stock -= quantity
	return nil
}

// Release returns stock reserved by a cancelled order.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	p.stock += quantity
	return nil
}

// RecordSale counts quantity as sold once the order is delivered.
func (p *Product) RecordSale(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	p.soldCount += quantity
	return nil
}

// Deactivate hides the product from new checkouts.
func (p *Product) Deactivate() {
	p.active = false
}
