package vpcs

import "time"

// EventType classifies device lifecycle transitions.
type EventType string

const (
	EventCreated EventType = "created"
	EventStarted EventType = "started"
	EventStopped EventType = "stopped"
	EventDeleted EventType = "deleted"
)

// Event describes a single lifecycle transition of a device.
type Event struct {
	Type   EventType `json:"type"`
	Device string    `json:"device"`
	ID     int       `json:"instance_id"`
	PID    int       `json:"pid,omitempty"`
	Time   time.Time `json:"time"`
}

// Emitter receives lifecycle events. Implementations must not block the
// caller for long; device operations run with the device lock held.
type Emitter interface {
	Emit(event Event)
}

type noopEmitter struct{}

func (noopEmitter) Emit(Event) {}
