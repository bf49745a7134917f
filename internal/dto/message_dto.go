package dto

import (
	"time"

	"github.com/google/uuid"
)

type StoreMessageRequest struct {
	ConversationId string `json:"conversationId" validate:"required"`
	SenderId       string `json:"senderId" validate:"required"`
	RecipientId    string `json:"recipientId" validate:"required"`
	Ciphertext     string `json:"ciphertext" validate:"required"`
}

// SendMessageRequest is the richer variant carrying emotional metadata
// gathered by the pre-send flow.
type SendMessageRequest struct {
	ConversationId  string   `json:"conversationId" validate:"required"`
	UserId          string   `json:"userId" validate:"required"`
	RecipientId     string   `json:"recipientId"`
	FinalText       string   `json:"finalText" validate:"required"`
	OriginalText    string   `json:"originalText"`
	PreSendEmotion  string   `json:"preSendEmotion"`
	IntensityScore  *float64 `json:"intensityScore"`
	WasPauseTaken   bool     `json:"wasPauseTaken"`
	UsedSuggestion  bool     `json:"usedSuggestion"`
	IsRepairAttempt bool     `json:"isRepairAttempt"`
}

type MessagePayload struct {
	Id              uuid.UUID `json:"id"`
	ConversationId  uuid.UUID `json:"conversationId"`
	SenderId        string    `json:"senderId"`
	RecipientId     string    `json:"recipientId"`
	Ciphertext      string    `json:"ciphertext"`
	OriginalText    string    `json:"originalText,omitempty"`
	PreSendEmotion  string    `json:"preSendEmotion,omitempty"`
	IntensityScore  *float64  `json:"intensityScore,omitempty"`
	WasPauseTaken   bool      `json:"wasPauseTaken"`
	UsedSuggestion  bool      `json:"usedSuggestion"`
	IsRepairAttempt bool      `json:"isRepairAttempt"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ListMessagesResponse struct {
	Messages []MessagePayload `json:"messages"`
}

type LastMessagesResponse struct {
	LastMessages []MessagePayload `json:"lastMessages"`
}

type SendMessageResponse struct {
	Ok        bool      `json:"ok"`
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type BehaviorFeedbackPayload struct {
	RiskLevel        string   `json:"riskLevel"`
	AverageIntensity *float64 `json:"averageIntensity"`
	TopEmotion       string   `json:"topEmotion,omitempty"`
	CoachHint        string   `json:"coachHint"`
	SampleSize       int      `json:"sampleSize"`
}

type BehaviorFeedbackResponse struct {
	Feedback BehaviorFeedbackPayload `json:"feedback"`
}

type DbHealthResponse struct {
	Connected bool            `json:"connected"`
	Latest    *MessagePayload `json:"latest"`
}
