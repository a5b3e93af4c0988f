package events

import (
	"time"
)

// EventType represents the type/severity of a Kubernetes Event.
type EventType string

const (
	// EventTypeNormal indicates normal, non-problematic events.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates events that may require attention.
	EventTypeWarning EventType = "Warning"
)

// EventReason represents the reason code for an event.
type EventReason string

const (
	// ReasonHandlerFailed indicates a controller handler returned an error or panicked.
	ReasonHandlerFailed EventReason = "HandlerFailed"

	// ReasonCollected indicates the collector deleted a resource that outlived its lifespan.
	ReasonCollected EventReason = "Collected"
)

// EventData holds the values substituted into message templates.
type EventData struct {
	// Name is the name of the object involved in the event.
	Name string

	// Operation is the handler that ran (reconcile, statusmodified, deleted).
	Operation string

	// Error contains error information for failure events.
	Error string

	// Age is the age of a collected resource.
	Age time.Duration
}

// getEventType maps a reason to its severity.
func getEventType(reason EventReason) EventType {
	switch reason {
	case ReasonHandlerFailed:
		return EventTypeWarning
	default:
		return EventTypeNormal
	}
}
