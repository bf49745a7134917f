package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ParticipantA string    `gorm:"type:varchar(100);not null"`
	ParticipantB string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
