package implementation

import (
	"context"
	"errors"
	"time"

	"xlai-be/internal/entity"
	"xlai-be/internal/mapper"
	"xlai-be/internal/model"
	"xlai-be/internal/repository/contract"
	"xlai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var m model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) FindLatestPerConversation(ctx context.Context, cutoff time.Time) ([]*entity.Message, error) {
	var models []*model.Message
	// DISTINCT ON needs its own ordering, so wrap it and re-order by recency.
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (conversation_id) *
			FROM messages
			WHERE created_at > ?
			ORDER BY conversation_id, created_at DESC
		) latest
		ORDER BY created_at DESC`, cutoff).Scan(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at <= ?", cutoff).Delete(&model.Message{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
