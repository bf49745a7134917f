package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"xlai-be/internal/entity"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/pkg/envelope"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the suggestion-log topic and records each rewrite
// as a message row with used_suggestion=false; the row flips (by a new send)
// only when the user actually applies the suggestion.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload SuggestionLoggedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal suggestion log: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// Without a conversation there is nothing to attach the row to.
	if payload.ConversationId == "" || payload.UserId == "" {
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := cs.findConversation(ctx, uow, payload.ConversationId)
	if err != nil {
		log.Printf("[ERROR] Failed to look up conversation %s: %v", payload.ConversationId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if conversation == nil {
		msg.Ack() // Conversation gone? Ack.
		return
	}

	sealed, err := envelope.Seal(payload.Suggestion)
	if err != nil {
		log.Printf("[ERROR] Failed to seal suggestion: %v", err)
		msg.Ack()
		return
	}

	original := payload.OriginalText
	row := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		SenderId:       payload.UserId,
		RecipientId:    otherParticipant(conversation, payload.UserId),
		Ciphertext:     sealed,
		OriginalText:   &original,
		Metadata: entity.MessageMetadata{
			UsedSuggestion: false,
		},
		CreatedAt: time.Now(),
	}

	if err := uow.MessageRepository().Create(ctx, &row); err != nil {
		log.Printf("[ERROR] Failed to record suggestion: %v", err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) findConversation(ctx context.Context, uow unitofwork.UnitOfWork, ref string) (*entity.Conversation, error) {
	if id, err := uuid.Parse(ref); err == nil {
		conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil || conversation != nil {
			return conversation, err
		}
	}
	return uow.ConversationRepository().FindOne(ctx, specification.ByConversationKey{Key: ref})
}
