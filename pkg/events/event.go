package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RESOLUTION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

const (
	TypeResolutionCompleted = "RESOLUTION_COMPLETED"
	TypeClarificationAsked  = "CLARIFICATION_ASKED"
	TypeRequestUnsupported  = "REQUEST_UNSUPPORTED"
	TypeRequestBlocked      = "REQUEST_BLOCKED"
)

func NewResolutionCompleted(sessionId, planSummary string, stage int, confidence float64) Event {
	return BaseEvent{
		Type: TypeResolutionCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"plan":       planSummary,
			"stage":      stage,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}

func NewClarificationAsked(sessionId, question string) Event {
	return BaseEvent{
		Type: TypeClarificationAsked,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"question":   question,
		},
		OccurredAt: time.Now(),
	}
}

func NewRequestUnsupported(sessionId, text string) Event {
	return BaseEvent{
		Type: TypeRequestUnsupported,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"text":       text,
		},
		OccurredAt: time.Now(),
	}
}

func NewRequestBlocked(sessionId, message string) Event {
	return BaseEvent{
		Type: TypeRequestBlocked,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"message":    message,
		},
		OccurredAt: time.Now(),
	}
}
