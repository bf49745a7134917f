package service

import (
	"context"
	"log"
	"strings"
	"time"

	"xlai-be/internal/dto"
	"xlai-be/internal/entity"
	"xlai-be/internal/pkg/apperror"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/pkg/ai/intensity"
	"xlai-be/pkg/events"
	pkgNats "xlai-be/pkg/nats"

	"github.com/google/uuid"
)

type IMessageService interface {
	StoreMessage(ctx context.Context, req *dto.StoreMessageRequest) (*dto.MessagePayload, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ListMessages(ctx context.Context, conversationRef string) (*dto.ListMessagesResponse, error)
	LatestPerConversation(ctx context.Context) (*dto.LastMessagesResponse, error)
	History(ctx context.Context, conversationRef string) (*dto.ListMessagesResponse, error)
	BehaviorFeedback(ctx context.Context, conversationRef string) (*dto.BehaviorFeedbackResponse, error)
	DbHealth(ctx context.Context) (*dto.DbHealthResponse, error)
}

const (
	coachHintSteady = "Your recent messages look fairly steady."
	coachHintMedium = "There's some emotional charge here. Consider one validating sentence before sharing your side."
	coachHintHigh   = "Tension looks high. Try slowing down, naming how you feel, and asking one curious question instead of defending."
)

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	retentionService IRetentionService
	eventPublisher   *pkgNats.Publisher
	deliveryService  IDeliveryService
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	retentionService IRetentionService,
	eventPublisher *pkgNats.Publisher,
	deliveryService IDeliveryService,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		retentionService: retentionService,
		eventPublisher:   eventPublisher,
		deliveryService:  deliveryService,
	}
}

func (s *messageService) StoreMessage(ctx context.Context, req *dto.StoreMessageRequest) (*dto.MessagePayload, error) {
	if strings.TrimSpace(req.Ciphertext) == "" {
		return nil, apperror.Validation("Missing required fields: ciphertext")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.resolveConversation(ctx, uow, req.ConversationId, req.SenderId, req.RecipientId, true)
	if err != nil {
		return nil, err
	}

	msg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		SenderId:       req.SenderId,
		RecipientId:    req.RecipientId,
		Ciphertext:     req.Ciphertext,
		CreatedAt:      time.Now(),
	}

	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, err
	}

	s.afterStore(ctx, &msg)

	payload := toMessagePayload(&msg)
	return &payload, nil
}

func (s *messageService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(req.FinalText) == "" {
		return nil, apperror.Validation("Missing required fields: finalText")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.resolveConversation(ctx, uow, req.ConversationId, req.UserId, req.RecipientId, true)
	if err != nil {
		return nil, err
	}

	recipient := req.RecipientId
	if recipient == "" {
		recipient = otherParticipant(conversation, req.UserId)
	}

	msg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		SenderId:       req.UserId,
		RecipientId:    recipient,
		Ciphertext:     sealForStorage(req.FinalText),
		Metadata: entity.MessageMetadata{
			IntensityScore:  req.IntensityScore,
			WasPauseTaken:   req.WasPauseTaken,
			UsedSuggestion:  req.UsedSuggestion,
			IsRepairAttempt: req.IsRepairAttempt,
		},
		CreatedAt: time.Now(),
	}
	if req.OriginalText != "" {
		msg.OriginalText = &req.OriginalText
	}
	if req.PreSendEmotion != "" {
		msg.Metadata.PreSendEmotion = &req.PreSendEmotion
	}

	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, err
	}

	s.afterStore(ctx, &msg)

	return &dto.SendMessageResponse{
		Ok:        true,
		Id:        msg.Id,
		CreatedAt: msg.CreatedAt,
	}, nil
}

// afterStore runs the best-effort side effects of a persisted message: a
// retention sweep and the delivery fan-out. Neither may fail the request.
func (s *messageService) afterStore(ctx context.Context, msg *entity.Message) {
	if _, err := s.retentionService.SweepOnce(ctx); err != nil {
		log.Printf("[WARN] Post-insert retention sweep failed: %v", err)
	}

	if s.eventPublisher != nil {
		evt := events.MessageStored(msg.Id.String(), msg.ConversationId.String(), msg.SenderId, msg.RecipientId, msg.CreatedAt)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish MESSAGE_STORED event: %v", err)
		}
		return
	}

	// No event bus: hand the message to the local hub directly.
	if s.deliveryService != nil {
		payload := toMessagePayload(msg)
		s.deliveryService.Deliver(ctx, &payload)
	}
}

func (s *messageService) ListMessages(ctx context.Context, conversationRef string) (*dto.ListMessagesResponse, error) {
	if conversationRef == "" {
		return nil, apperror.Validation("Missing required fields: conversationId")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.resolveConversation(ctx, uow, conversationRef, "", "", false)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return &dto.ListMessagesResponse{Messages: []dto.MessagePayload{}}, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.CreatedAfter{Cutoff: s.retentionService.Cutoff()},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ListMessagesResponse{Messages: toMessagePayloads(messages)}, nil
}

func (s *messageService) LatestPerConversation(ctx context.Context) (*dto.LastMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindLatestPerConversation(ctx, s.retentionService.Cutoff())
	if err != nil {
		return nil, err
	}

	return &dto.LastMessagesResponse{LastMessages: toMessagePayloads(messages)}, nil
}

func (s *messageService) History(ctx context.Context, conversationRef string) (*dto.ListMessagesResponse, error) {
	if conversationRef == "" {
		return nil, apperror.Validation("Missing required fields: conversation")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.resolveConversation(ctx, uow, conversationRef, "", "", false)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return &dto.ListMessagesResponse{Messages: []dto.MessagePayload{}}, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.CreatedAfter{Cutoff: s.retentionService.Cutoff()},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 100},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ListMessagesResponse{Messages: toMessagePayloads(messages)}, nil
}

func (s *messageService) BehaviorFeedback(ctx context.Context, conversationRef string) (*dto.BehaviorFeedbackResponse, error) {
	if conversationRef == "" {
		return nil, apperror.Validation("Missing required fields: conversation")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := s.resolveConversation(ctx, uow, conversationRef, "", "", false)
	if err != nil {
		return nil, err
	}

	feedback := dto.BehaviorFeedbackPayload{
		RiskLevel: "low",
		CoachHint: coachHintSteady,
	}
	if conversation == nil {
		return &dto.BehaviorFeedbackResponse{Feedback: feedback}, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	if err != nil {
		return nil, err
	}

	var sum float64
	var scored int
	emotionCounts := map[string]int{}
	for _, m := range messages {
		if m.Metadata.IntensityScore != nil {
			sum += *m.Metadata.IntensityScore
			scored++
		}
		if m.Metadata.PreSendEmotion != nil && *m.Metadata.PreSendEmotion != "" {
			emotionCounts[strings.ToLower(*m.Metadata.PreSendEmotion)]++
		}
	}

	if scored > 0 {
		avg := sum / float64(scored)
		feedback.AverageIntensity = &avg
		feedback.RiskLevel = intensity.LabelFromScore(avg)
	}

	topCount := 0
	for emotion, count := range emotionCounts {
		if count > topCount {
			topCount = count
			feedback.TopEmotion = emotion
		}
	}

	switch feedback.RiskLevel {
	case "high":
		feedback.CoachHint = coachHintHigh
	case "medium":
		feedback.CoachHint = coachHintMedium
	}
	feedback.SampleSize = len(messages)

	return &dto.BehaviorFeedbackResponse{Feedback: feedback}, nil
}

func (s *messageService) DbHealth(ctx context.Context) (*dto.DbHealthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.MessageRepository().FindOne(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 1},
	)
	if err != nil {
		return &dto.DbHealthResponse{Connected: false}, nil
	}

	resp := &dto.DbHealthResponse{Connected: true}
	if latest != nil {
		payload := toMessagePayload(latest)
		resp.Latest = &payload
	}
	return resp, nil
}

// resolveConversation accepts either a conversation uuid or an external key
// (the front-end historically sends short keys like contact handles). When
// create is set and nothing matches, a conversation is created under that
// key so subsequent reads resolve to the same row.
func (s *messageService) resolveConversation(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	ref, senderId, recipientId string,
	create bool,
) (*entity.Conversation, error) {
	repo := uow.ConversationRepository()

	if id, err := uuid.Parse(ref); err == nil {
		conversation, err := repo.FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if conversation != nil {
			return conversation, nil
		}
	}

	conversation, err := repo.FindOne(ctx, specification.ByConversationKey{Key: ref})
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		return conversation, nil
	}

	// A "b:a" ref names the same pair as "a:b"; canonicalize so both resolve
	// to one row.
	key := ref
	if parts := strings.Split(ref, ":"); len(parts) == 2 {
		key = entity.ConversationKey(parts[0], parts[1])
		if key != ref {
			conversation, err = repo.FindOne(ctx, specification.ByConversationKey{Key: key})
			if err != nil {
				return nil, err
			}
			if conversation != nil {
				return conversation, nil
			}
		}
	}

	if !create {
		return nil, nil
	}

	conversation = &entity.Conversation{
		Id:           uuid.New(),
		Key:          key,
		ParticipantA: senderId,
		ParticipantB: recipientId,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func otherParticipant(c *entity.Conversation, handle string) string {
	if c.ParticipantA == handle {
		return c.ParticipantB
	}
	return c.ParticipantA
}

func toMessagePayload(m *entity.Message) dto.MessagePayload {
	payload := dto.MessagePayload{
		Id:              m.Id,
		ConversationId:  m.ConversationId,
		SenderId:        m.SenderId,
		RecipientId:     m.RecipientId,
		Ciphertext:      m.Ciphertext,
		IntensityScore:  m.Metadata.IntensityScore,
		WasPauseTaken:   m.Metadata.WasPauseTaken,
		UsedSuggestion:  m.Metadata.UsedSuggestion,
		IsRepairAttempt: m.Metadata.IsRepairAttempt,
		CreatedAt:       m.CreatedAt,
	}
	if m.OriginalText != nil {
		payload.OriginalText = *m.OriginalText
	}
	if m.Metadata.PreSendEmotion != nil {
		payload.PreSendEmotion = *m.Metadata.PreSendEmotion
	}
	return payload
}

func toMessagePayloads(messages []*entity.Message) []dto.MessagePayload {
	payloads := make([]dto.MessagePayload, 0, len(messages))
	for _, m := range messages {
		payloads = append(payloads, toMessagePayload(m))
	}
	return payloads
}
