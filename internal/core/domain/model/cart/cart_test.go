package cart_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(shopID kernel.UUID, quantity int) cart.Item {
	return cart.Item{
		ProductID: kernel.NewUUID(),
		ShopID:    shopID,
		Name:      "Bánh mì",
		UnitPrice: kernel.MustMoney(25_000),
		Quantity:  quantity,
		AddedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestCart_AddItem(t *testing.T) {
	shopID := kernel.NewUUID()

	t.Run("merges quantities of the same product", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		first := item(shopID, 1)
		require.NoError(t, c.AddItem(first))

		again := first
		again.Quantity = 2
		again.UnitPrice = kernel.MustMoney(27_000)
		again.AddedAt = first.AddedAt.Add(time.Hour)
		require.NoError(t, c.AddItem(again))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, int64(27_000), items[0].UnitPrice.Amount())
		assert.Equal(t, first.AddedAt, items[0].AddedAt)
	})

	t.Run("rejects invalid quantity", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)

		err = c.AddItem(item(shopID, 0))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_RemoveItemAndClear(t *testing.T) {
	shopID := kernel.NewUUID()
	c, err := cart.NewCart(kernel.NewUUID())
	require.NoError(t, err)
	a, b := item(shopID, 1), item(shopID, 1)
	require.NoError(t, c.AddItem(a))
	require.NoError(t, c.AddItem(b))

	assert.True(t, c.RemoveItem(a.ProductID))
	assert.False(t, c.RemoveItem(a.ProductID))
	require.Len(t, c.Items(), 1)

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCart_ItemsForCheckout(t *testing.T) {
	shopID := kernel.NewUUID()

	t.Run("empty cart", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)

		_, err = c.ItemsForCheckout(shopID)

		var empty *cart.EmptyCartError
		require.ErrorAs(t, err, &empty)
		require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	})

	t.Run("item of another shop", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, c.AddItem(item(shopID, 1)))
		require.NoError(t, c.AddItem(item(kernel.NewUUID(), 1)))

		_, err = c.ItemsForCheckout(shopID)

		var empty *cart.EmptyCartError
		require.ErrorAs(t, err, &empty)
		assert.Contains(t, empty.Reason, "belongs to shop")
	})

	t.Run("all items of the shop", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, c.AddItem(item(shopID, 1)))
		require.NoError(t, c.AddItem(item(shopID, 2)))

		items, err := c.ItemsForCheckout(shopID)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestRestoreCart(t *testing.T) {
	customerID := kernel.NewUUID()
	c, err := cart.RestoreCart(customerID, []cart.Item{item(kernel.NewUUID(), 2)}, 7)

	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.True(t, c.CustomerID().IsEqual(customerID))
	assert.Equal(t, int64(7), c.Version())

	_, err = cart.RestoreCart(kernel.UUID{}, nil, 0)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
