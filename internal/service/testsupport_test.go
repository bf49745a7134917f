package service

import (
	"context"
	"sort"
	"time"

	"xlai-be/internal/entity"
	"xlai-be/internal/repository/contract"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
)

// In-memory repositories interpreting the same specifications the GORM
// implementations translate to SQL, so service tests run without Postgres.

type memoryStore struct {
	users         []*entity.User
	conversations []*entity.Conversation
	messages      []*entity.Message
}

type memoryUow struct {
	store *memoryStore
}

func (u *memoryUow) Begin(ctx context.Context) error { return nil }
func (u *memoryUow) Commit() error                   { return nil }
func (u *memoryUow) Rollback() error                 { return nil }

func (u *memoryUow) UserRepository() contract.UserRepository {
	return &memoryUserRepo{store: u.store}
}

func (u *memoryUow) ConversationRepository() contract.ConversationRepository {
	return &memoryConversationRepo{store: u.store}
}

func (u *memoryUow) MessageRepository() contract.MessageRepository {
	return &memoryMessageRepo{store: u.store}
}

type memoryFactory struct {
	store *memoryStore
}

func (f *memoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUow{store: f.store}
}

func newMemoryFactory() (*memoryStore, unitofwork.RepositoryFactory) {
	store := &memoryStore{}
	return store, &memoryFactory{store: store}
}

// --- users ---

type memoryUserRepo struct {
	store *memoryStore
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *memoryUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if u.Id != spec.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email == nil || *u.Email != spec.Email {
				return false
			}
		case specification.ByHandle:
			if u.Handle != spec.Handle {
				return false
			}
		}
	}
	return true
}

// --- conversations ---

type memoryConversationRepo struct {
	store *memoryStore
}

func (r *memoryConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.store.conversations = append(r.store.conversations, conversation)
	return nil
}

func (r *memoryConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	for _, c := range r.store.conversations {
		if conversationMatches(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memoryConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.store.conversations {
		if conversationMatches(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func conversationMatches(c *entity.Conversation, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if c.Id != spec.ID {
				return false
			}
		case specification.ByConversationKey:
			if c.Key != spec.Key {
				return false
			}
		}
	}
	return true
}

// --- messages ---

type memoryMessageRepo struct {
	store *memoryStore
}

func (r *memoryMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *memoryMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	matches, _ := r.FindAll(ctx, specs...)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *memoryMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			out = append(out, m)
		}
	}

	desc := false
	limit := 0
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.OrderBy:
			desc = spec.Desc
		case specification.Pagination:
			limit = spec.Limit
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

func (r *memoryMessageRepo) FindLatestPerConversation(ctx context.Context, cutoff time.Time) ([]*entity.Message, error) {
	latest := map[string]*entity.Message{}
	for _, m := range r.store.messages {
		if !m.CreatedAt.After(cutoff) {
			continue
		}
		key := m.ConversationId.String()
		if cur, ok := latest[key]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[key] = m
		}
	}

	out := make([]*entity.Message, 0, len(latest))
	for _, m := range latest {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryMessageRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*entity.Message
	var deleted int64
	for _, m := range r.store.messages {
		if m.CreatedAt.After(cutoff) {
			kept = append(kept, m)
		} else {
			deleted++
		}
	}
	r.store.messages = kept
	return deleted, nil
}

func messageMatches(m *entity.Message, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if m.Id != spec.ID {
				return false
			}
		case specification.ByConversationID:
			if m.ConversationId != spec.ConversationID {
				return false
			}
		case specification.CreatedAfter:
			if !m.CreatedAt.After(spec.Cutoff) {
				return false
			}
		}
	}
	return true
}
