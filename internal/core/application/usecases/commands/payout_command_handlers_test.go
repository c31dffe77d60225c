package commands_test

import (
	"testing"

	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var bank = wallet.BankAccount{BankName: "VCB", AccountNumber: "0071000123456", AccountHolder: "TRAN VAN A"}

func walletFactory(w *world) *MockWalletUoWFactory {
	f := new(MockWalletUoWFactory)
	f.On("Create").Return(newMockUoW(w.store, nil))
	return f
}

// fundShipper credits the shipper wallet with amount.
func fundShipper(t *testing.T, w *world, amount int64) *wallet.Wallet {
	t.Helper()
	posting, err := ledger.NewWalletLedger(clock).Credit(t.Context(), memWalletRepo{w.store},
		w.shipper.ID(), wallet.TypeShipper, kernel.MustMoney(amount), wallet.OrderEarning(kernel.NewUUID()))
	require.NoError(t, err)
	return posting.Wallet
}

func requestPayout(t *testing.T, w *world, amount int64) (*wallet.PayoutRequest, error) {
	t.Helper()
	h := commands.NewRequestPayoutCommandHandler(walletFactory(w), newRunner(nil),
		ledger.NewWalletLedger(clock), kernel.MustMoney(10_000), clock)
	cmd, err := commands.NewRequestPayoutCommand(kernel.NewUUID(), w.shipper.ID(), wallet.TypeShipper,
		kernel.MustMoney(amount), bank)
	require.NoError(t, err)
	return h.Handle(t.Context(), cmd)
}

func decidePayout(
	t *testing.T, w *world, p *wallet.PayoutRequest, actor kernel.Actor, d commands.PayoutDecision, reason string,
) (*wallet.PayoutRequest, error) {
	t.Helper()
	h := commands.NewDecidePayoutCommandHandler(walletFactory(w), newRunner(nil), ledger.NewWalletLedger(clock), clock)
	cmd, err := commands.NewDecidePayoutCommand(p.ID(), actor, d, reason)
	require.NoError(t, err)
	return h.Handle(t.Context(), cmd)
}

func TestPayout_RequestThenReject(t *testing.T) {
	w := newWorld(t)
	sw := fundShipper(t, w, 200_000)

	p, err := requestPayout(t, w, 100_000)

	require.NoError(t, err)
	assert.Equal(t, wallet.PayoutPending, p.Status())
	assert.Equal(t, int64(100_000), sw.Balance())

	p, err = decidePayout(t, w, p, w.admin, commands.DecisionReject, "account closed")

	require.NoError(t, err)
	assert.Equal(t, wallet.PayoutRejected, p.Status())
	assert.Equal(t, "account closed", p.RejectReason())
	assert.Equal(t, int64(200_000), sw.Balance())
	assert.Equal(t, w.store.ledgerSum(sw.ID()), sw.Balance())
	assert.Equal(t, sw.TotalEarned()-sw.TotalWithdrawn(), sw.Balance())

	_, err = decidePayout(t, w, p, w.admin, commands.DecisionApprove, "")

	var invalid *wallet.InvalidPayoutTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, int64(200_000), sw.Balance())
}

func TestPayout_ApproveThenTransfer(t *testing.T) {
	w := newWorld(t)
	sw := fundShipper(t, w, 200_000)
	p, err := requestPayout(t, w, 150_000)
	require.NoError(t, err)

	p, err = decidePayout(t, w, p, w.admin, commands.DecisionApprove, "")
	require.NoError(t, err)
	p, err = decidePayout(t, w, p, kernel.SystemActor(), commands.DecisionTransfer, "")
	require.NoError(t, err)

	assert.Equal(t, wallet.PayoutTransferred, p.Status())
	require.NotNil(t, p.Approved())
	require.NotNil(t, p.Transferred())
	assert.Equal(t, int64(50_000), sw.Balance())
	assert.Equal(t, int64(150_000), sw.TotalWithdrawn())
}

func TestPayout_InsufficientBalance(t *testing.T) {
	w := newWorld(t)
	sw := fundShipper(t, w, 50_000)

	_, err := requestPayout(t, w, 100_000)

	var insufficient *wallet.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	assert.Equal(t, int64(50_000), sw.Balance())
	assert.Empty(t, w.store.payouts)
}

func TestPayout_BelowMinimumNeverOpensTransaction(t *testing.T) {
	w := newWorld(t)
	factory := new(MockWalletUoWFactory)
	h := commands.NewRequestPayoutCommandHandler(factory, newRunner(nil),
		ledger.NewWalletLedger(clock), kernel.MustMoney(10_000), clock)
	cmd, err := commands.NewRequestPayoutCommand(kernel.NewUUID(), w.shipper.ID(), wallet.TypeShipper,
		kernel.MustMoney(9_999), bank)
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}

func TestPayout_ReplayReturnsExistingRequest(t *testing.T) {
	w := newWorld(t)
	sw := fundShipper(t, w, 200_000)
	h := commands.NewRequestPayoutCommandHandler(walletFactory(w), newRunner(nil),
		ledger.NewWalletLedger(clock), kernel.MustMoney(1), clock)
	cmd, err := commands.NewRequestPayoutCommand(kernel.NewUUID(), w.shipper.ID(), wallet.TypeShipper,
		kernel.MustMoney(100_000), bank)
	require.NoError(t, err)

	first, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	second, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(100_000), sw.Balance())
}

func TestPayout_DecisionNeedsBackOffice(t *testing.T) {
	w := newWorld(t)
	fundShipper(t, w, 200_000)
	p, err := requestPayout(t, w, 100_000)
	require.NoError(t, err)

	publisher := new(MockEventPublisher)
	uow := newMockUoW(w.store, nil)
	factory := new(MockWalletUoWFactory)
	factory.On("Create").Return(uow).Once()
	h := commands.NewDecidePayoutCommandHandler(factory, newRunner(publisher), ledger.NewWalletLedger(clock), clock)
	cmd, err := commands.NewDecidePayoutCommand(p.ID(), w.shipper, commands.DecisionApprove, "")
	require.NoError(t, err)

	_, err = h.Handle(t.Context(), cmd)

	var notPermitted *wallet.PayoutActorNotPermittedError
	require.ErrorAs(t, err, &notPermitted)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestParsePayoutDecision(t *testing.T) {
	d, err := commands.ParsePayoutDecision(" reject ")
	require.NoError(t, err)
	assert.Equal(t, commands.DecisionReject, d)

	_, err = commands.ParsePayoutDecision("cancel")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
