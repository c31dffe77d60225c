package voucher

import (
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/govalues/decimal"
)

type DiscountType string

const (
	Percentage   DiscountType = "PERCENTAGE"
	Fixed        DiscountType = "FIXED"
	FreeShipping DiscountType = "FREE_SHIPPING"
)

func ParseDiscountType(s string) (DiscountType, error) {
	t := DiscountType(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t DiscountType) Validate() error {
	switch t {
	case Percentage, Fixed, FreeShipping:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("discount type", fmt.Errorf("%q is not supported", string(t)))
	}
}

// percentOf returns floor(amount * percent / 100).
func percentOf(amount kernel.Money, percent int64) (kernel.Money, error) {
	rate, err := decimal.New(percent, 2)
	if err != nil {
		return kernel.Zero, err
	}
	base, err := decimal.New(amount.Amount(), 0)
	if err != nil {
		return kernel.Zero, err
	}
	product, err := base.Mul(rate)
	if err != nil {
		return kernel.Zero, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}
	whole, _, ok := product.Trunc(0).Int64(0)
	if !ok {
		return kernel.Zero, kernel.ErrMoneyOverflow
	}
	return kernel.NewMoney(whole)
}
