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

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Conversation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
