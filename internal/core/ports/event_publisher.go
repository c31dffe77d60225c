package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// EventPublisher is the notification dispatcher. It is called after commit; its
// failures are logged by the caller and never undo the transaction.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
