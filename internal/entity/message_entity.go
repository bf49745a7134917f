package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageMetadata is the emotional bookkeeping attached to a stored message.
// All fields are optional; a plain send carries the zero value.
type MessageMetadata struct {
	PreSendEmotion  *string  `json:"pre_send_emotion,omitempty"`
	IntensityScore  *float64 `json:"intensity_score,omitempty"`
	WasPauseTaken   bool     `json:"was_pause_taken"`
	UsedSuggestion  bool     `json:"used_suggestion"`
	IsRepairAttempt bool     `json:"is_repair_attempt"`
}

// Message is immutable once written; the retention sweep is the only thing
// that removes it. Ciphertext is an opaque string: either the demo cipher
// envelope or plaintext, the server never inspects it.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	SenderId       string
	RecipientId    string
	Ciphertext     string
	OriginalText   *string
	Metadata       MessageMetadata
	CreatedAt      time.Time
}
