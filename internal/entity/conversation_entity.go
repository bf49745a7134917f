package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conversation joins an unordered pair of participants. Key is the
// deterministic sorted-pair join, so there is at most one conversation per
// pair regardless of who initiated it.
type Conversation struct {
	Id           uuid.UUID
	Key          string
	ParticipantA string
	ParticipantB string
	CreatedAt    time.Time
}

// ConversationKey derives the canonical key for a participant pair.
func ConversationKey(handleA, handleB string) string {
	pair := []string{handleA, handleB}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
