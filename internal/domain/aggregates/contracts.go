package aggregates

import "time"

// Auditable is implemented by entities embedding Audit.
type Auditable interface {
	StampCreated(at time.Time, by string)
	StampModified(at time.Time, by string)
}

// EventSource is implemented by entities embedding EventRecorder.
type EventSource interface {
	PendingEvents() []Event
	ClearEvents()
}

// Root is an aggregate root: audited and able to record events.
type Root interface {
	Auditable
	EventSource
}
