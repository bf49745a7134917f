package specification

import "gorm.io/gorm"

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByHandle filters users by their stable handle
type ByHandle struct {
	Handle string
}

func (s ByHandle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("handle = ?", s.Handle)
}

// ByConversationKey filters conversations by their canonical pair key
type ByConversationKey struct {
	Key string
}

func (s ByConversationKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}
