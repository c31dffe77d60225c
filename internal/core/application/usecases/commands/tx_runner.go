package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/retry"

	"go.uber.org/zap"
)

// TxRunner executes a command body in a serializable transaction.
//
// Each attempt gets a fresh unit of work, so every read inside the body is fresh.
// Conflicts (errs.ErrConcurrentModification) are retried with backoff; any other
// error aborts immediately. After commit the recorded domain events are handed to
// the publisher. A publishing failure is logged and never returned.
type TxRunner struct {
	policy    retry.Policy
	publisher ports.EventPublisher
	logger    *zap.Logger
}

func NewTxRunner(policy retry.Policy, publisher ports.EventPublisher, logger *zap.Logger) TxRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return TxRunner{
		policy:    policy,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "tx_runner")),
	}
}

type transaction interface {
	TxManager
	EventSource
}

func runInTx[U transaction](
	ctx context.Context, r TxRunner, operation string, create func() U, body func(uow U) error,
) error {
	var events []kernel.DomainEvent

	attempt := func() error {
		uow := create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := body(uow); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		events = uow.PullDomainEvents()
		return nil
	}

	logger := r.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	err := retry.DoNotify(ctx, operation, r.policy, attempt, func(err error, n int, wait time.Duration) {
		logger.Debug("transaction conflict, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", n),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		return err
	}

	r.publish(ctx, logger, operation, events)
	return nil
}

func (r TxRunner) publish(ctx context.Context, logger *zap.Logger, operation string, events []kernel.DomainEvent) {
	if r.publisher == nil || len(events) == 0 {
		return
	}
	if err := r.publisher.Publish(ctx, events...); err != nil {
		logger.Warn("domain events not published",
			zap.String("operation", operation),
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}
