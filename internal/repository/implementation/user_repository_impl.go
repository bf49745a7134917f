package implementation

import (
	"context"
	"errors"

	"xlai-be/internal/entity"
	"xlai-be/internal/mapper"
	"xlai-be/internal/model"
	"xlai-be/internal/repository/contract"
	"xlai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.User, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
