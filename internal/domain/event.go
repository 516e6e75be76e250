package domain

import "time"

// Event is implemented by domain events recorded by aggregates during
// mutation. Aggregates accumulate events in memory; the application layer
// drains them after a successful save and translates them to integration
// contracts. Events for rolled-back writes are never published.
type Event interface {
	// EventName returns a stable, dot-separated identifier
	// (e.g. "todolist.item_added").
	EventName() string

	// OccurredAt returns the caller-supplied timestamp of the state
	// transition that produced the event.
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregate roots to accumulate domain events.
// The zero value is ready to use. It is not safe for concurrent use; an
// aggregate instance is confined to a single request.
type EventRecorder struct {
	events []Event
}

// Record appends an event to the pending set.
func (r *EventRecorder) Record(e Event) {
	r.events = append(r.events, e)
}

// DrainEvents returns all pending events and clears the recorder.
func (r *EventRecorder) DrainEvents() []Event {
	events := r.events
	r.events = nil
	return events
}
