package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	SenderId       string         `gorm:"type:varchar(100);not null"`
	RecipientId    string         `gorm:"type:varchar(100);not null"`
	Ciphertext     string         `gorm:"type:text;not null"`
	OriginalText   *string        `gorm:"type:text"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
