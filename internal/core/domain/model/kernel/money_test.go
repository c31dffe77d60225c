package kernel_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		zero, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		m, err := kernel.NewMoney(100_000)
		require.NoError(t, err)
		assert.Equal(t, int64(100_000), m.Amount())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := kernel.MustMoney(100_000)
	b := kernel.MustMoney(15_000)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(115_000), sum.Amount())
	})

	t.Run("add overflow", func(t *testing.T) {
		_, err := kernel.MustMoney(math.MaxInt64).Add(kernel.MustMoney(1))
		require.ErrorIs(t, err, kernel.ErrMoneyOverflow)
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.Equal(t, int64(85_000), diff.Amount())
	})

	t.Run("sub below zero", func(t *testing.T) {
		_, err := b.Sub(a)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("mul by quantity", func(t *testing.T) {
		total, err := kernel.MustMoney(25_000).MulInt(4)
		require.NoError(t, err)
		assert.Equal(t, int64(100_000), total.Amount())

		_, err = a.MulInt(-1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.MustMoney(math.MaxInt64).MulInt(2)
		require.ErrorIs(t, err, kernel.ErrMoneyOverflow)
	})

	t.Run("min and compare", func(t *testing.T) {
		assert.Equal(t, b, a.Min(b))
		assert.Equal(t, b, b.Min(a))
		assert.True(t, b.LessThan(a))
		assert.False(t, a.LessThan(a))
	})
}
