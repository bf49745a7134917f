package contract

import (
	"context"

	"xlai-be/internal/entity"
	"xlai-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
