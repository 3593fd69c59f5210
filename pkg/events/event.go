package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MEETING_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic Event implementation used across the app.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Lifecycle event types emitted by the meeting pipeline.
const (
	TypeMeetingProcessed = "MEETING_PROCESSED"
	TypeMeetingFailed    = "MEETING_FAILED"
)

func NewMeetingProcessed(meetingId, topic, resultsPath string) BaseEvent {
	return BaseEvent{
		Type: TypeMeetingProcessed,
		Data: map[string]interface{}{
			"meeting_id":   meetingId,
			"topic":        topic,
			"results_path": resultsPath,
		},
		OccurredAt: time.Now(),
	}
}

func NewMeetingFailed(meetingId, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeMeetingFailed,
		Data: map[string]interface{}{
			"meeting_id": meetingId,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
