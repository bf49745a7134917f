package contract

import (
	"context"
	"time"

	"xlai-be/internal/entity"
	"xlai-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindLatestPerConversation returns the newest non-expired message of each
	// conversation, most recent first (one row per conversation_id).
	FindLatestPerConversation(ctx context.Context, cutoff time.Time) ([]*entity.Message, error)

	// DeleteOlderThan hard-deletes rows with created_at <= cutoff and returns
	// the number of rows removed. Idempotent.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
