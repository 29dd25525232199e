package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by the services.
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

// Event type codes emitted by the auth and reset flows.
const (
	TypeUserRegistered    = "USER_REGISTERED"
	TypeUserLogin         = "USER_LOGIN"
	TypePasswordResetDone = "PASSWORD_RESET_COMPLETED"
	TypeOtpEmailRequested = "OTP_EMAIL_REQUESTED"
)

func NewEvent(eventType string, data map[string]interface{}) Event {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
