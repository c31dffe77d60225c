package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

const (
	EventPlaced          = "order.placed"
	EventStatusChanged   = "order.status_changed"
	EventShipperAssigned = "order.shipper_assigned"
)

type PlacedEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	ShopID     kernel.UUID
	Total      int64
	At         time.Time
}

func (e PlacedEvent) EventName() string        { return EventPlaced }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e PlacedEvent) OccurredAt() time.Time    { return e.At }

type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	Actor   kernel.Actor
	Reason  string
	At      time.Time
}

func (e StatusChangedEvent) EventName() string        { return EventStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }

type ShipperAssignedEvent struct {
	OrderID   kernel.UUID
	ShipperID kernel.UUID
	At        time.Time
}

func (e ShipperAssignedEvent) EventName() string        { return EventShipperAssigned }
func (e ShipperAssignedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e ShipperAssignedEvent) OccurredAt() time.Time    { return e.At }
