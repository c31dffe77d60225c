package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeShip(shopID kernel.UUID, code string) voucher.Params {
	return voucher.Params{
		ID:                kernel.NewUUID(),
		ShopID:            shopID,
		Code:              code,
		DiscountType:      voucher.FreeShipping,
		UsageLimit:        100,
		UsageLimitPerUser: 2,
		ValidFrom:         now,
		ValidTo:           now.Add(30 * 24 * time.Hour),
	}
}

func TestCreateVoucherCommandHandler_Handle(t *testing.T) {
	w := newWorld(t)
	h := commands.NewCreateVoucherCommandHandler(w.factory(), newRunner(nil))

	t.Run("owner creates a voucher", func(t *testing.T) {
		cmd, err := commands.NewCreateVoucherCommand(w.owner, freeShip(w.shop.ID(), "freeship"))
		require.NoError(t, err)

		v, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "FREESHIP", v.Code())
		assert.Contains(t, w.store.vouchers, v.ID())
	})

	t.Run("code must be unique in the shop", func(t *testing.T) {
		cmd, err := commands.NewCreateVoucherCommand(w.owner, freeShip(w.shop.ID(), "save10"))
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrVoucherCodeExists)
	})

	t.Run("another owner is refused", func(t *testing.T) {
		stranger := mustActor(t, kernel.RoleOwner)
		cmd, err := commands.NewCreateVoucherCommand(stranger, freeShip(w.shop.ID(), "HACK"))
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, commands.ErrNotShopOwner)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestNewCreateVoucherCommand_InvalidDefinition(t *testing.T) {
	owner := mustActor(t, kernel.RoleOwner)
	p := freeShip(kernel.NewUUID(), "")
	p.UsageLimit = 0

	_, err := commands.NewCreateVoucherCommand(owner, p)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
