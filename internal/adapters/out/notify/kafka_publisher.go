package notify

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// batchTimeout flushes a lone event almost at once instead of after kafka-go's one
// second default.
const batchTimeout = 5 * time.Millisecond

// KafkaPublisher writes one message per event. The key is the aggregate id so the
// events of one order stay ordered within a partition.
//
// A write is detached from the caller's cancellation and bounded by timeout, so an
// aborted request does not drop its events and a slow broker holds a request for at
// most timeout.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(topic string, timeout time.Duration, brokers ...string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           batchTimeout,
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           timeout,
			AllowAutoTopicCreation: true,
		},
		timeout: timeout,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := NewEnvelope(event).Marshal()
		if err != nil {
			return fmt.Errorf("encode %s: %w", event.EventName(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventName())},
			},
		})
	}

	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
