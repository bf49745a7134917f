package contract

import (
	"context"

	"xlai-be/internal/entity"
	"xlai-be/internal/repository/specification"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
}
