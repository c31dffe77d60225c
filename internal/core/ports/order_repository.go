// Package ports defines the contracts between the fulfillment core and its adapters:
// repositories bound to a transaction, the unit of work that owns that transaction,
// and the publisher that receives domain events after commit.
//
// Every Update is a compare-and-swap on the aggregate's version. When the stored
// version differs, Update returns errs.ErrConcurrentModification and the whole
// transaction is retried by the caller.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, shipper, timestamps, cancellation and settlement changes.
	// It fails with errs.ErrConcurrentModification if the order changed since it was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
