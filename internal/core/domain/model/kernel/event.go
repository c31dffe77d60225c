package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a transaction.
// Events are published only after the transaction commits.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that emit domain events.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// PullDomainEvents returns the recorded events and forgets them.
func (r *EventRecorder) PullDomainEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
