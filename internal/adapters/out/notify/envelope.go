// Package notify delivers committed domain events to the outside world.
//
// Publishers are called by the command side after a transaction commits. They
// never take part in the transaction: a failed delivery is logged by the caller
// and the committed state stands.
package notify

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
)

// Envelope is the JSON shape of every published event.
type Envelope struct {
	EventType   string         `json:"event_type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

func NewEnvelope(event kernel.DomainEvent) Envelope {
	return Envelope{
		EventType:   event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payloadOf(event),
	}
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// payloadOf flattens the known events; identifiers become strings and statuses their names.
func payloadOf(event kernel.DomainEvent) map[string]any {
	switch e := event.(type) {
	case order.PlacedEvent:
		return map[string]any{
			"order_id":    e.OrderID.String(),
			"customer_id": e.CustomerID.String(),
			"shop_id":     e.ShopID.String(),
			"total":       e.Total,
		}
	case order.StatusChangedEvent:
		payload := map[string]any{
			"order_id":   e.OrderID.String(),
			"from":       e.From.String(),
			"to":         e.To.String(),
			"actor_id":   e.Actor.ID().String(),
			"actor_role": string(e.Actor.Role()),
		}
		if e.Reason != "" {
			payload["reason"] = e.Reason
		}
		return payload
	case order.ShipperAssignedEvent:
		return map[string]any{
			"order_id":   e.OrderID.String(),
			"shipper_id": e.ShipperID.String(),
		}
	case wallet.PayoutStatusChangedEvent:
		payload := map[string]any{
			"payout_id": e.PayoutID.String(),
			"user_id":   e.UserID.String(),
			"to":        string(e.To),
			"amount":    e.Amount,
		}
		if e.From != "" {
			payload["from"] = string(e.From)
		}
		return payload
	}
	return nil
}
