package mapper

import (
	"xlai-be/internal/entity"
	"xlai-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:           c.Id,
		Key:          c.Key,
		ParticipantA: c.ParticipantA,
		ParticipantB: c.ParticipantB,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:           c.Id,
		Key:          c.Key,
		ParticipantA: c.ParticipantA,
		ParticipantB: c.ParticipantB,
		CreatedAt:    c.CreatedAt,
	}
}
