package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a chat participant. Handle is the stable string id the front-end
// uses in sender/recipient fields; Email and PasswordHash are only set for
// accounts created through signup (demo fixtures have neither).
type User struct {
	Id           uuid.UUID
	Handle       string
	DisplayName  string
	Email        *string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
