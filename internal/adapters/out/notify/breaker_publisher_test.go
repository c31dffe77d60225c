package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	calls  int
	events int
	err    error
}

func (p *countingPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	p.calls++
	p.events += len(events)
	return p.err
}

func payoutEvent() kernel.DomainEvent {
	return wallet.PayoutStatusChangedEvent{
		PayoutID: kernel.NewUUID(), UserID: kernel.NewUUID(), To: wallet.PayoutPending, Amount: 100_000, At: at,
	}
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	next := &countingPublisher{}
	fallback := &countingPublisher{}
	p := NewBreakerPublisher(next, fallback, DefaultBreakerSettings(), nil)

	require.NoError(t, p.Publish(t.Context(), payoutEvent(), payoutEvent()))

	assert.Equal(t, 2, next.events)
	assert.Zero(t, fallback.calls)
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestBreakerPublisher_NoEvents(t *testing.T) {
	next := &countingPublisher{}
	p := NewBreakerPublisher(next, nil, DefaultBreakerSettings(), nil)

	require.NoError(t, p.Publish(t.Context()))
	assert.Zero(t, next.calls)
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	brokerDown := errors.New("dial tcp: connection refused")
	next := &countingPublisher{err: brokerDown}
	fallback := &countingPublisher{}
	p := NewBreakerPublisher(next, fallback, BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Hour}, nil)

	for range 3 {
		err := p.Publish(t.Context(), payoutEvent())
		require.ErrorIs(t, err, brokerDown)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	err := p.Publish(t.Context(), payoutEvent())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, next.calls, "an open breaker must not reach the broker")
	assert.Equal(t, 4, fallback.events, "every undelivered event goes to the fallback")
}

func TestBreakerPublisher_ClosesAfterSuccessfulProbe(t *testing.T) {
	next := &countingPublisher{err: errors.New("timeout")}
	p := NewBreakerPublisher(next, nil, BreakerSettings{ConsecutiveFailures: 1, OpenTimeout: 10 * time.Millisecond}, nil)

	require.Error(t, p.Publish(t.Context(), payoutEvent()))
	require.Equal(t, gobreaker.StateOpen, p.State())

	next.err = nil
	require.Eventually(t, func() bool {
		return p.State() == gobreaker.StateHalfOpen
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Publish(t.Context(), payoutEvent()))
	assert.Equal(t, gobreaker.StateClosed, p.State())
}
