package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Voucher is a discount code scoped to one shop.
//
// Value means a whole percent (1..100) for PERCENTAGE, an amount for FIXED and is
// ignored for FREE_SHIPPING. MaxDiscount, when set, caps PERCENTAGE and FREE_SHIPPING.
type Voucher struct {
	id                kernel.UUID
	shopID            kernel.UUID
	code              string
	discountType      DiscountType
	value             int64
	maxDiscount       *kernel.Money
	minOrderAmount    kernel.Money
	usageLimit        int
	usageLimitPerUser int
	currentUsage      int
	validFrom         time.Time
	validTo           time.Time
	active            bool
	deleted           bool
	version           int64

	isConstructed bool
}

// Params describes a voucher; it is used both to create and to restore one.
type Params struct {
	ID                kernel.UUID
	ShopID            kernel.UUID
	Code              string
	DiscountType      DiscountType
	Value             int64
	MaxDiscount       *kernel.Money
	MinOrderAmount    kernel.Money
	UsageLimit        int
	UsageLimitPerUser int
	CurrentUsage      int
	ValidFrom         time.Time
	ValidTo           time.Time
	Active            bool
	Deleted           bool
	Version           int64
}

// NormalizeCode upper-cases and trims a code so lookups are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewVoucher creates an unused, active voucher.
func NewVoucher(p Params) (*Voucher, error) {
	p.CurrentUsage = 0
	p.Active = true
	p.Deleted = false
	p.Version = 0
	return RestoreVoucher(p)
}

// RestoreVoucher rebuilds a voucher from storage, re-checking its invariants.
func RestoreVoucher(p Params) (*Voucher, error) {
	var errList []error
	if err := p.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := p.ShopID.Validate(); err != nil {
		errList = append(errList, err)
	}
	code := NormalizeCode(p.Code)
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if err := p.DiscountType.Validate(); err != nil {
		errList = append(errList, err)
	}
	switch p.DiscountType {
	case Percentage:
		if p.Value < 1 || p.Value > 100 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("percent", p.Value, 1, 100))
		}
	case Fixed:
		if p.Value <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("fixed discount", p.Value, 1, "unbounded"))
		}
	case FreeShipping:
	}
	if p.UsageLimit < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("usage limit", p.UsageLimit, 1, "unbounded"))
	}
	if p.UsageLimitPerUser < 1 {
		errList = append(errList,
			errs.NewValueIsOutOfRangeError("usage limit per user", p.UsageLimitPerUser, 1, "unbounded"))
	}
	if p.CurrentUsage < 0 || p.CurrentUsage > p.UsageLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("current usage", p.CurrentUsage, 0, p.UsageLimit))
	}
	if p.ValidFrom.IsZero() || p.ValidTo.IsZero() || p.ValidTo.Before(p.ValidFrom) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("validity window",
			fmt.Errorf("[%s, %s] is empty", p.ValidFrom.Format(time.RFC3339), p.ValidTo.Format(time.RFC3339))))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Voucher{
		id:                p.ID,
		shopID:            p.ShopID,
		code:              code,
		discountType:      p.DiscountType,
		value:             p.Value,
		maxDiscount:       p.MaxDiscount,
		minOrderAmount:    p.MinOrderAmount,
		usageLimit:        p.UsageLimit,
		usageLimitPerUser: p.UsageLimitPerUser,
		currentUsage:      p.CurrentUsage,
		validFrom:         p.ValidFrom,
		validTo:           p.ValidTo,
		active:            p.Active,
		deleted:           p.Deleted,
		version:           p.Version,
		isConstructed:     true,
	}, nil
}

func (v *Voucher) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVoucherIsNotConstructed
	}
	return nil
}

func (v *Voucher) ID() kernel.UUID              { return v.id }
func (v *Voucher) ShopID() kernel.UUID          { return v.shopID }
func (v *Voucher) Code() string                 { return v.code }
func (v *Voucher) DiscountType() DiscountType   { return v.discountType }
func (v *Voucher) Value() int64                 { return v.value }
func (v *Voucher) MaxDiscount() *kernel.Money   { return v.maxDiscount }
func (v *Voucher) MinOrderAmount() kernel.Money { return v.minOrderAmount }
func (v *Voucher) UsageLimit() int              { return v.usageLimit }
func (v *Voucher) UsageLimitPerUser() int       { return v.usageLimitPerUser }
func (v *Voucher) CurrentUsage() int            { return v.currentUsage }
func (v *Voucher) ValidFrom() time.Time         { return v.validFrom }
func (v *Voucher) ValidTo() time.Time           { return v.validTo }
func (v *Voucher) IsActive() bool               { return v.active }
func (v *Voucher) IsDeleted() bool              { return v.deleted }
func (v *Voucher) Version() int64               { return v.version }
func (v *Voucher) IncrementVersion()            { v.version++ }

// CheckRedeemable runs every check that does not need the per-user usage count:
// shop scope, active and not deleted, validity window, global limit and minimum order.
func (v *Voucher) CheckRedeemable(shopID kernel.UUID, now time.Time, subtotal kernel.Money) error {
	switch {
	case !v.shopID.IsEqual(shopID):
		return ErrShopMismatch
	case !v.active || v.deleted:
		return ErrInactive
	case now.Before(v.validFrom):
		return ErrNotYetValid
	case now.After(v.validTo):
		return ErrExpired
	case v.currentUsage >= v.usageLimit:
		return ErrUsageLimitReached
	case subtotal.LessThan(v.minOrderAmount):
		return fmt.Errorf("%w: minimum is %s, subtotal is %s", ErrMinOrderNotMet, v.minOrderAmount, subtotal)
	}
	return nil
}

// CheckPerUser fails when the user already has usageLimitPerUser usages of this voucher.
func (v *Voucher) CheckPerUser(usedByUser int) error {
	if usedByUser >= v.usageLimitPerUser {
		return ErrPerUserLimitReached
	}
	return nil
}

// ComputeDiscount returns the discount for an order with the given subtotal and ship fee.
// The result never exceeds what the order can absorb.
func (v *Voucher) ComputeDiscount(subtotal, shipFee kernel.Money) (kernel.Money, error) {
	var (
		discount kernel.Money
		err      error
	)
	switch v.discountType {
	case Percentage:
		if discount, err = percentOf(subtotal, v.value); err != nil {
			return kernel.Zero, err
		}
		discount = v.capped(discount)
	case Fixed:
		if discount, err = kernel.NewMoney(v.value); err != nil {
			return kernel.Zero, err
		}
		discount = discount.Min(subtotal)
	case FreeShipping:
		discount = v.capped(shipFee)
	default:
		return kernel.Zero, v.discountType.Validate()
	}
	return discount, nil
}

func (v *Voucher) capped(discount kernel.Money) kernel.Money {
	if v.maxDiscount == nil {
		return discount
	}
	return discount.Min(*v.maxDiscount)
}

// Redeem counts one more usage. The counter never goes down; the caller writes the
// matching Usage in the same transaction.
func (v *Voucher) Redeem() error {
	if v.currentUsage >= v.usageLimit {
		return ErrUsageLimitReached
	}
	v.currentUsage++
	return nil
}

// Deactivate stops further redemptions; existing usages are kept.
func (v *Voucher) Deactivate() {
	v.active = false
}
