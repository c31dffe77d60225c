package kernel

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the delivery destination frozen into an order at checkout.
type Address struct {
	recipient string
	phone     string
	line      string
	city      string

	guard guard.ConstructorGuard
}

// NewAddress trims every field; recipient, phone and line are required.
func NewAddress(recipient, phone, line, city string) (Address, error) {
	a := Address{
		recipient: strings.TrimSpace(recipient),
		phone:     strings.TrimSpace(phone),
		line:      strings.TrimSpace(line),
		city:      strings.TrimSpace(city),
		guard:     guard.NewConstructorGuard(),
	}

	var errList []error
	if a.recipient == "" {
		errList = append(errList, errs.NewValueIsRequiredError("recipient"))
	}
	if a.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if a.line == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address line"))
	}
	if err := errors.Join(errList...); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Recipient() string { return a.recipient }
func (a Address) Phone() string     { return a.phone }
func (a Address) Line() string      { return a.line }
func (a Address) City() string      { return a.city }
