package voucher

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// UsageKey is the deterministic identity of the usage of voucherID by userID on orderID.
func UsageKey(voucherID, userID, orderID kernel.UUID) string {
	return voucherID.String() + "_" + userID.String() + "_" + orderID.String()
}

// Usage records that a voucher was applied to one order of one user.
type Usage struct {
	key       string
	voucherID kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID
	discount  kernel.Money
	usedAt    time.Time
}

func NewUsage(voucherID, userID, orderID kernel.UUID, discount kernel.Money, usedAt time.Time) (*Usage, error) {
	if err := errors.Join(voucherID.Validate(), userID.Validate(), orderID.Validate()); err != nil {
		return nil, errors.Join(ErrUsageKeyIsIncomplete, err)
	}
	return &Usage{
		key:       UsageKey(voucherID, userID, orderID),
		voucherID: voucherID,
		userID:    userID,
		orderID:   orderID,
		discount:  discount,
		usedAt:    usedAt,
	}, nil
}

func (u *Usage) Key() string            { return u.key }
func (u *Usage) VoucherID() kernel.UUID { return u.voucherID }
func (u *Usage) UserID() kernel.UUID    { return u.userID }
func (u *Usage) OrderID() kernel.UUID   { return u.orderID }
func (u *Usage) Discount() kernel.Money { return u.discount }
func (u *Usage) UsedAt() time.Time      { return u.usedAt }
