package mapper

import (
	"encoding/json"

	"xlai-be/internal/entity"
	"xlai-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var meta entity.MessageMetadata
	if len(msg.Metadata) > 0 {
		// A malformed blob yields the zero metadata rather than a failure;
		// the message itself is still readable.
		_ = json.Unmarshal(msg.Metadata, &meta)
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		SenderId:       msg.SenderId,
		RecipientId:    msg.RecipientId,
		Ciphertext:     msg.Ciphertext,
		OriginalText:   msg.OriginalText,
		Metadata:       meta,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	metaJSON, err := json.Marshal(msg.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		SenderId:       msg.SenderId,
		RecipientId:    msg.RecipientId,
		Ciphertext:     msg.Ciphertext,
		OriginalText:   msg.OriginalText,
		Metadata:       datatypes.JSON(metaJSON),
		CreatedAt:      msg.CreatedAt,
	}
}
