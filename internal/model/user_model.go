package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Handle       string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName  string    `gorm:"type:varchar(255);not null"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
