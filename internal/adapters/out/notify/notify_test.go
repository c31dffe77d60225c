package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var at = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
	// hang blocks every write until its context ends.
	hang   bool
	ctxErr error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.ctxErr = ctx.Err()
	if w.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewEnvelope_StatusChanged(t *testing.T) {
	orderID := kernel.NewUUID()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)

	envelope := NewEnvelope(order.StatusChangedEvent{
		OrderID: orderID, From: order.Pending, To: order.Cancelled, Actor: actor, Reason: "changed my mind", At: at,
	})

	assert.Equal(t, order.EventStatusChanged, envelope.EventType)
	assert.Equal(t, orderID.String(), envelope.AggregateID)
	assert.Equal(t, at, envelope.OccurredAt)
	assert.Equal(t, "PENDING", envelope.Payload["from"])
	assert.Equal(t, "CANCELLED", envelope.Payload["to"])
	assert.Equal(t, "CUSTOMER", envelope.Payload["actor_role"])
	assert.Equal(t, "changed my mind", envelope.Payload["reason"])
}

func TestNewEnvelope_NewPayoutHasNoFrom(t *testing.T) {
	envelope := NewEnvelope(wallet.PayoutStatusChangedEvent{
		PayoutID: kernel.NewUUID(), UserID: kernel.NewUUID(), To: wallet.PayoutPending, Amount: 50_000, At: at,
	})

	assert.Equal(t, wallet.EventPayoutStatusChanged, envelope.EventType)
	assert.NotContains(t, envelope.Payload, "from")
	assert.Equal(t, int64(50_000), envelope.Payload["amount"])
}

func TestKafkaPublisher_Publish_OneMessagePerEvent(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}
	orderID := kernel.NewUUID()

	err := publisher.Publish(context.Background(),
		order.PlacedEvent{OrderID: orderID, CustomerID: kernel.NewUUID(), ShopID: kernel.NewUUID(), Total: 105_000, At: at},
		order.ShipperAssignedEvent{OrderID: orderID, ShipperID: kernel.NewUUID(), At: at},
	)

	require.NoError(t, err)
	require.Len(t, writer.written, 2)
	for _, msg := range writer.written {
		assert.Equal(t, orderID.String(), string(msg.Key))
	}
	assert.Equal(t, "event_type", writer.written[0].Headers[0].Key)
	assert.Equal(t, order.EventPlaced, string(writer.written[0].Headers[0].Value))

	var decoded Envelope
	require.NoError(t, json.Unmarshal(writer.written[0].Value, &decoded))
	assert.Equal(t, order.EventPlaced, decoded.EventType)
	assert.InDelta(t, 105_000, decoded.Payload["total"], 0)
}

func TestKafkaPublisher_Publish_NoEvents(t *testing.T) {
	writer := &fakeWriter{err: errors.New("must not be called")}
	publisher := &KafkaPublisher{writer: writer}

	require.NoError(t, publisher.Publish(context.Background()))
}

func TestKafkaPublisher_Publish_WriterError(t *testing.T) {
	broker := errors.New("broker down")
	publisher := &KafkaPublisher{writer: &fakeWriter{err: broker}}

	err := publisher.Publish(context.Background(), order.ShipperAssignedEvent{
		OrderID: kernel.NewUUID(), ShipperID: kernel.NewUUID(), At: at,
	})

	require.ErrorIs(t, err, broker)
}

func TestKafkaPublisher_Publish_SlowBrokerIsBounded(t *testing.T) {
	publisher := &KafkaPublisher{writer: &fakeWriter{hang: true}, timeout: 20 * time.Millisecond}

	start := time.Now()
	err := publisher.Publish(context.Background(), order.ShipperAssignedEvent{
		OrderID: kernel.NewUUID(), ShipperID: kernel.NewUUID(), At: at,
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestKafkaPublisher_Publish_IgnoresCallerCancellation(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, order.ShipperAssignedEvent{
		OrderID: kernel.NewUUID(), ShipperID: kernel.NewUUID(), At: at,
	})

	require.NoError(t, err)
	require.NoError(t, writer.ctxErr)
	assert.Len(t, writer.written, 1)
}

func TestNewKafkaPublisher_FlushesPromptly(t *testing.T) {
	publisher := NewKafkaPublisher("marketplace.events", 2*time.Second, "localhost:9092")

	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.False(t, writer.Async)
	assert.Equal(t, batchTimeout, writer.BatchTimeout)
	assert.Equal(t, kafka.RequireOne, writer.RequiredAcks)
	assert.Equal(t, 2*time.Second, writer.WriteTimeout)
	assert.Equal(t, 2*time.Second, publisher.timeout)
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	require.NoError(t, (&KafkaPublisher{writer: writer}).Close())
	assert.True(t, writer.closed)
}

func TestLogPublisher_Publish_LogsEveryEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	err := publisher.Publish(context.Background(),
		order.PlacedEvent{OrderID: kernel.NewUUID(), CustomerID: kernel.NewUUID(), ShopID: kernel.NewUUID(), At: at},
		wallet.PayoutStatusChangedEvent{PayoutID: kernel.NewUUID(), UserID: kernel.NewUUID(), To: wallet.PayoutPending, At: at},
	)

	require.NoError(t, err)
	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, order.EventPlaced, entries[0].ContextMap()["event_type"])
	assert.Equal(t, wallet.EventPayoutStatusChanged, entries[1].ContextMap()["event_type"])
	assert.Equal(t, "event_publisher", entries[0].ContextMap()["component"])
}
