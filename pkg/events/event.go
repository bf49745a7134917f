package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_STORED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across the app.
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

// MessageStored announces a persisted chat message on the bus so delivery
// workers (websocket push) can fan it out.
func MessageStored(messageId, conversationId, senderId, recipientId string, createdAt time.Time) Event {
	return BaseEvent{
		Type: "MESSAGE_STORED",
		Data: map[string]interface{}{
			"message_id":      messageId,
			"conversation_id": conversationId,
			"sender_id":       senderId,
			"recipient_id":    recipientId,
			"created_at":      createdAt.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}

// UserSignedUp announces a new account.
func UserSignedUp(userId, handle string) Event {
	return BaseEvent{
		Type: "USER_SIGNUP",
		Data: map[string]interface{}{
			"user_id": userId,
			"handle":  handle,
		},
		OccurredAt: time.Now(),
	}
}
