// Package retry runs an operation that may lose an optimistic-concurrency race,
// repeating it with bounded exponential backoff.
//
// Only errors classified as errs.ErrConcurrentModification are retried. Every other
// error is deterministic (validation, state, business rule, not found) and is returned
// after the first attempt. When the attempt budget is spent the last conflict is
// wrapped into errs.ConcurrencyConflictError.
package retry

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts     = 5
	DefaultInitialInterval = 20 * time.Millisecond
	DefaultMaxInterval     = 500 * time.Millisecond
)

// Policy bounds the retry loop. MaxAttempts counts the first attempt.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy returns the policy used when configuration leaves values unset.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = DefaultInitialInterval
	}
	if p.MaxInterval < p.InitialInterval {
		p.MaxInterval = p.InitialInterval
	}
	return p
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	//nolint:gosec // MaxAttempts is normalized to a positive value
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)
}

// Notify is called before each retry with the conflict that caused it.
type Notify func(err error, attempt int, wait time.Duration)

// Do runs op until it succeeds, fails with a non-conflict error, or exhausts the policy.
func Do(ctx context.Context, operation string, policy Policy, op func() error) error {
	return DoNotify(ctx, operation, policy, op, nil)
}

// DoNotify is Do with a hook invoked before every retry.
func DoNotify(ctx context.Context, operation string, policy Policy, op func() error, notify Notify) error {
	policy = policy.normalized()
	attempts := 0

	err := backoff.RetryNotify(func() error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		attempts++
		opErr := op()
		if opErr == nil {
			return nil
		}
		if !errors.Is(opErr, errs.ErrConcurrentModification) {
			return backoff.Permanent(opErr)
		}
		return opErr
	}, policy.backOff(ctx), func(err error, wait time.Duration) {
		if notify != nil {
			notify(err, attempts, wait)
		}
	})

	if err != nil && errors.Is(err, errs.ErrConcurrentModification) {
		var exhausted *errs.ConcurrencyConflictError
		if errors.As(err, &exhausted) {
			return err
		}
		return errs.NewConcurrencyConflictError(operation, attempts, err)
	}
	return err
}
