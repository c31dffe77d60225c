package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAcceptHandler(w *world, uows ...*MockUoW) (commands.AcceptOrderCommandHandler, *MockOrderUoWFactory) {
	factory := new(MockOrderUoWFactory)
	for _, uow := range uows {
		factory.On("Create").Return(uow).Once()
	}
	return commands.NewAcceptOrderCommandHandler(factory, newRunner(nil), clock), factory
}

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	w := newWorld(t)
	o := w.ready(t)
	h, factory := newAcceptHandler(w, newMockUoW(w.store, nil))
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), w.shipper.ID())
	require.NoError(t, err)

	got, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipping, got.Status())
	require.NotNil(t, got.ShipperID())
	assert.Equal(t, w.shipper.ID(), *got.ShipperID())
	factory.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	w := newWorld(t)
	o := w.ready(t)
	w.accept(t, o, w.shipper)

	rival := mustActor(t, kernel.RoleShipper)
	h, _ := newAcceptHandler(w, newMockUoW(w.store, nil))
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), rival.ID())
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)

	var assigned *order.AlreadyAssignedError
	require.ErrorAs(t, err, &assigned)
	assert.Equal(t, w.shipper.ID(), assigned.ShipperID)
	assert.Equal(t, w.shipper.ID(), *o.ShipperID())
}

func TestAcceptOrderCommandHandler_Handle_NotReady(t *testing.T) {
	w := newWorld(t)
	o := w.checkout(t, "")
	h, _ := newAcceptHandler(w, newMockUoW(w.store, nil))
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), w.shipper.ID())
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrNotClaimable)
	assert.Nil(t, o.ShipperID())
}
