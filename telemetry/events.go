// Package telemetry provides wind field health tracking, performance timing,
// and experiment output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventAddSource EventType = iota
	EventMoveSource
	EventRemoveSource
	EventRestartSource // add for an id that was already live
	EventIgnored       // move/remove for an unknown id
)

// String returns the CSV/log name of the event type.
func (t EventType) String() string {
	switch t {
	case EventAddSource:
		return "add"
	case EventMoveSource:
		return "move"
	case EventRemoveSource:
		return "remove"
	case EventRestartSource:
		return "restart"
	case EventIgnored:
		return "ignored"
	}
	return "unknown"
}

// Event records one applied wind source command.
type Event struct {
	Type     EventType
	Tick     int32
	SourceID string
}

// NewAddEvent creates an event for a newly tracked source.
func NewAddEvent(tick int32, id string) Event {
	return Event{Type: EventAddSource, Tick: tick, SourceID: id}
}

// NewMoveEvent creates an event for a source whose wind was recomputed.
func NewMoveEvent(tick int32, id string) Event {
	return Event{Type: EventMoveSource, Tick: tick, SourceID: id}
}

// NewRemoveEvent creates an event for a dropped source.
func NewRemoveEvent(tick int32, id string) Event {
	return Event{Type: EventRemoveSource, Tick: tick, SourceID: id}
}

// NewRestartEvent creates an event for a duplicate add.
func NewRestartEvent(tick int32, id string) Event {
	return Event{Type: EventRestartSource, Tick: tick, SourceID: id}
}

// NewIgnoredEvent creates an event for a command naming an unknown id.
func NewIgnoredEvent(tick int32, id string) Event {
	return Event{Type: EventIgnored, Tick: tick, SourceID: id}
}
