package aggregates

import (
	"time"

	"github.com/google/uuid"
)

// Event is a record of something that happened to an aggregate.
type Event interface {
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// EventMeta is embedded by concrete events.
type EventMeta struct {
	EventID    uuid.UUID `json:"eventId"`
	OccurredOn time.Time `json:"occurredOn"`
}

func NewEventMeta() EventMeta {
	return EventMeta{EventID: uuid.New(), OccurredOn: time.Now().UTC()}
}

func (m EventMeta) OccurredAt() time.Time { return m.OccurredOn }

// EventRecorder queues events on an aggregate until the unit of work drains them.
type EventRecorder struct {
	pending []Event
}

func (r *EventRecorder) Raise(e Event) {
	r.pending = append(r.pending, e)
}

func (r *EventRecorder) PendingEvents() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

func (r *EventRecorder) ClearEvents() {
	r.pending = nil
}
