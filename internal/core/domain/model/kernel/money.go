package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// ErrMoneyOverflow is returned when an addition would exceed int64.
var ErrMoneyOverflow = errs.NewValueIsInvalidError("money amount overflows")

// Money is a non-negative amount in the smallest currency unit (e.g., đồng, cents).
// All monetary fields of orders, vouchers and wallets use it; signed ledger
// amounts are plain int64 because a ledger entry may be a debit.
type Money struct {
	amount int64
}

// Zero is the zero amount; unlike other value objects the zero value of Money is valid.
var Zero = Money{}

// NewMoney validates that amount is not negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(math.MaxInt64))
	}
	return Money{amount: amount}, nil
}

// MustMoney is NewMoney for literals and fixtures.
func MustMoney(amount int64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

func (m Money) Add(other Money) (Money, error) {
	if other.amount > math.MaxInt64-m.amount {
		return Money{}, ErrMoneyOverflow
	}
	return Money{amount: m.amount + other.amount}, nil
}

// Sub fails instead of producing a negative amount.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is less than %d", m.amount, other.amount),
		)
	}
	return Money{amount: m.amount - other.amount}, nil
}

// MulInt multiplies by a non-negative quantity.
func (m Money) MulInt(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt)
	}
	if quantity != 0 && m.amount > math.MaxInt64/int64(quantity) {
		return Money{}, ErrMoneyOverflow
	}
	return Money{amount: m.amount * int64(quantity)}, nil
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.amount < m.amount {
		return other
	}
	return m
}

func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
