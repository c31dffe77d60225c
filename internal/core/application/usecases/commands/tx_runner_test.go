package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTxRunner_PublishFailureIsLoggedNotReturned(t *testing.T) {
	w := newWorld(t)
	core, logs := observer.New(zapcore.WarnLevel)
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	runner := commands.NewTxRunner(testPolicy, publisher, zap.New(core))
	h := commands.NewTransitionOrderCommandHandler(w.factory(), runner,
		ledger.NewWalletLedger(clock), clock)
	o := w.checkout(t, "")
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), w.owner, order.Confirmed, "")
	require.NoError(t, err)

	got, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, got.Status())
	require.Equal(t, 1, logs.FilterMessage("domain events not published").Len())
	publisher.AssertExpectations(t)
}
