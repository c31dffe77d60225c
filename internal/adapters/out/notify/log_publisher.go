package notify

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger.With(zap.String("component", "event_publisher"))}
}

func (p *LogPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		envelope := NewEnvelope(event)
		p.logger.Info("domain event",
			zap.String("event_type", envelope.EventType),
			zap.String("aggregate_id", envelope.AggregateID),
			zap.Time("occurred_at", envelope.OccurredAt),
			zap.Any("payload", envelope.Payload),
		)
	}
	return nil
}
