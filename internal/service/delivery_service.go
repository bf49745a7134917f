package service

import (
	"context"
	"encoding/json"
	"log"

	"xlai-be/internal/dto"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/internal/websocket"
	"xlai-be/pkg/events"
	pkgNats "xlai-be/pkg/nats"

	"github.com/google/uuid"
)

type IDeliveryService interface {
	// Start wires the event-bus consumer; no-op when the bus is absent.
	Start() error

	// Deliver pushes a stored message straight to the recipient's sockets.
	Deliver(ctx context.Context, msg *dto.MessagePayload)
}

type deliveryService struct {
	subscriber *pkgNats.Subscriber
	hub        *websocket.Hub
	uowFactory unitofwork.RepositoryFactory
}

func NewDeliveryService(
	subscriber *pkgNats.Subscriber,
	hub *websocket.Hub,
	uowFactory unitofwork.RepositoryFactory,
) IDeliveryService {
	return &deliveryService{
		subscriber: subscriber,
		hub:        hub,
		uowFactory: uowFactory,
	}
}

func (s *deliveryService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe("events.MESSAGE_STORED", "message-delivery", s.handleMessageStored)
}

func (s *deliveryService) handleMessageStored(ctx context.Context, event events.Event) error {
	data := event.Payload()

	messageId, _ := data["message_id"].(string)
	id, err := uuid.Parse(messageId)
	if err != nil {
		log.Printf("[ERROR] MESSAGE_STORED event with bad message_id %q", messageId)
		return nil // Unparseable events are not retriable.
	}

	// Reload the row so delivery carries the full payload, not just the
	// event envelope. A row already swept by retention is a no-op.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}

	payload := toMessagePayload(msg)
	s.Deliver(ctx, &payload)
	return nil
}

func (s *deliveryService) Deliver(ctx context.Context, msg *dto.MessagePayload) {
	if s.hub == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"type": "message",
		"data": msg,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal delivery payload: %v", err)
		return
	}

	s.hub.Send(msg.RecipientId, data)
}
