package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShopCommandHandler_Handle(t *testing.T) {
	w := newWorld(t)
	h := commands.NewCreateShopCommandHandler(w.factory(), newRunner(nil))

	cmd, err := commands.NewCreateShopCommand(kernel.NewUUID(), w.owner, "  Bún Chả Hương Liên ", kernel.MustMoney(20_000))
	require.NoError(t, err)

	s, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "Bún Chả Hương Liên", s.Name())
	assert.Equal(t, w.owner.ID(), s.OwnerID())
	assert.True(t, s.IsActive())
	assert.Contains(t, w.store.shops, s.ID())
}

func TestNewCreateShopCommand_Invalid(t *testing.T) {
	t.Run("only owners open shops", func(t *testing.T) {
		_, err := commands.NewCreateShopCommand(kernel.NewUUID(), mustActor(t, kernel.RoleCustomer), "Shop", kernel.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := commands.NewCreateShopCommand(kernel.NewUUID(), mustActor(t, kernel.RoleOwner), " ", kernel.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCreateShopCommand_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, commands.CreateShopCommand{}.Validate(), commands.ErrCreateShopCommandIsNotConstructed)
}

func TestCreateProductCommandHandler_Handle(t *testing.T) {
	w := newWorld(t)
	h := commands.NewCreateProductCommandHandler(w.factory(), newRunner(nil))

	t.Run("owner lists a product", func(t *testing.T) {
		cmd, err := commands.NewCreateProductCommand(
			kernel.NewUUID(), w.shop.ID(), w.owner, "Bánh mì", kernel.MustMoney(25_000), 30)
		require.NoError(t, err)

		p, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, w.shop.ID(), p.ShopID())
		assert.Equal(t, 30, p.Stock())
		assert.Contains(t, w.store.products, p.ID())
	})

	t.Run("another owner is refused", func(t *testing.T) {
		cmd, err := commands.NewCreateProductCommand(
			kernel.NewUUID(), w.shop.ID(), mustActor(t, kernel.RoleOwner), "Bánh mì", kernel.MustMoney(25_000), 1)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrNotShopOwner)
	})

	t.Run("unknown shop", func(t *testing.T) {
		cmd, err := commands.NewCreateProductCommand(
			kernel.NewUUID(), kernel.NewUUID(), w.owner, "Bánh mì", kernel.MustMoney(25_000), 1)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewCreateProductCommand_CollectsEveryProblem(t *testing.T) {
	_, err := commands.NewCreateProductCommand(kernel.NewUUID(), kernel.UUID{}, mustActor(t, kernel.RoleOwner), "", kernel.Zero, -1)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
