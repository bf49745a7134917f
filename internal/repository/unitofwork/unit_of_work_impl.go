package unitofwork

import (
	"context"
	"fmt"

	"xlai-be/internal/repository/contract"
	"xlai-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationRepository() contract.ConversationRepository {
	return implementation.NewConversationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageRepository() contract.MessageRepository {
	return implementation.NewMessageRepository(u.getDB())
}
