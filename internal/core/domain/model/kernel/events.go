package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate. Events are published after
// the unit of work that produced them commits.
type DomainEvent interface {
	// EventType is a dotted name such as "parcel.status_changed".
	EventType() string
	// PartitionKey groups events of one aggregate so consumers see them in order.
	PartitionKey() string
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	PullEvents() []DomainEvent
}

// EventRecorder is embedded by aggregates to collect events until they are pulled.
// Aggregates are not shared between goroutines, so it is not synchronized.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents returns the recorded events and forgets them.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
