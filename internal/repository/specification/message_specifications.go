package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID filters messages to a single conversation.
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// CreatedAfter keeps rows newer than the retention cutoff. Rows created
// exactly at the cutoff are already expired (inclusive cutoff on deletion).
type CreatedAfter struct {
	Cutoff time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.Cutoff)
}
