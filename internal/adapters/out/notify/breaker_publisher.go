package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerSettings controls when the broker is considered down.
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a single probe is let through.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

// BreakerPublisher stops calling a failing broker for a while. Events it could not
// deliver go to the fallback, so they are at least visible in the log.
type BreakerPublisher struct {
	next     ports.EventPublisher
	fallback ports.EventPublisher
	cb       *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(
	next, fallback ports.EventPublisher, settings BreakerSettings, logger *zap.Logger,
) *BreakerPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "event_publisher"))
	threshold := settings.ConsecutiveFailures
	if threshold == 0 {
		threshold = DefaultBreakerSettings().ConsecutiveFailures
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "event-broker",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &BreakerPublisher{next: next, fallback: fallback, cb: cb}
}

func (p *BreakerPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, events...)
	})
	if err == nil {
		return nil
	}

	if p.fallback != nil {
		if fbErr := p.fallback.Publish(ctx, events...); fbErr != nil {
			err = errors.Join(err, fbErr)
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("broker unavailable: %w", err)
	}
	return err
}

// State reports the breaker state, mostly for health checks.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
