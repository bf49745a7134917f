package service

import (
	"context"
	"time"

	"xlai-be/internal/dto"
	"xlai-be/internal/entity"
	"xlai-be/internal/pkg/apperror"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/internal/websocket"

	"github.com/google/uuid"
)

type IContactService interface {
	ListContacts(ctx context.Context, userHandle string) (*dto.ListContactsResponse, error)
}

type contactService struct {
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
}

func NewContactService(uowFactory unitofwork.RepositoryFactory, hub *websocket.Hub) IContactService {
	return &contactService{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// ListContacts returns every other user as a contact, ensuring a
// conversation exists for each pair so the front-end always has a
// conversationId to post against.
func (s *contactService) ListContacts(ctx context.Context, userHandle string) (*dto.ListContactsResponse, error) {
	if userHandle == "" {
		return nil, apperror.Validation("Missing required fields: userId")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "handle"})
	if err != nil {
		return nil, err
	}

	contacts := make([]dto.ContactPayload, 0, len(users))
	for _, user := range users {
		if user.Handle == userHandle {
			continue
		}

		conversation, err := s.ensureConversation(ctx, uow, userHandle, user.Handle)
		if err != nil {
			return nil, err
		}

		status := "offline"
		if s.hub != nil && s.hub.IsOnline(ctx, user.Handle) {
			status = "online"
		}

		contacts = append(contacts, dto.ContactPayload{
			Id:             user.Handle,
			Name:           user.DisplayName,
			Status:         status,
			ConversationId: conversation.Id.String(),
		})
	}

	return &dto.ListContactsResponse{Contacts: contacts}, nil
}

func (s *contactService) ensureConversation(ctx context.Context, uow unitofwork.UnitOfWork, handleA, handleB string) (*entity.Conversation, error) {
	key := entity.ConversationKey(handleA, handleB)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByConversationKey{Key: key})
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		return conversation, nil
	}

	conversation = &entity.Conversation{
		Id:           uuid.New(),
		Key:          key,
		ParticipantA: handleA,
		ParticipantB: handleB,
		CreatedAt:    time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}
