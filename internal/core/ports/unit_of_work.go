package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks the aggregates written through its repositories.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a serializable database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// A serialization failure is reported as errs.ErrConcurrentModification.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// PullDomainEvents drains the events of every tracked aggregate.
	// Call it only after a successful Commit.
	PullDomainEvents() []kernel.DomainEvent

	OrderRepository() OrderRepository
	CartRepository() CartRepository
	ProductRepository() ProductRepository
	ShopRepository() ShopRepository
	VoucherRepository() VoucherRepository
	WalletRepository() WalletRepository
	PayoutRepository() PayoutRepository
}
