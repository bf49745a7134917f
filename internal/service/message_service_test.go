package service

import (
	"context"
	"testing"
	"time"

	"xlai-be/internal/dto"
	"xlai-be/internal/entity"
	"xlai-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newMessageServiceForTest() (*memoryStore, IMessageService, IRetentionService) {
	store, factory := newMemoryFactory()
	retention := NewRetentionService(factory, 24, 60, noopLogger{})
	svc := NewMessageService(factory, retention, nil, nil)
	return store, svc, retention
}

func TestStoreMessageCreatesConversationAndRow(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	res, err := svc.StoreMessage(ctx, &dto.StoreMessageRequest{
		ConversationId: "c1",
		SenderId:       "u1",
		RecipientId:    "u2",
		Ciphertext:     "abc",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEqual(t, uuid.Nil, res.Id)
	assert.False(t, res.CreatedAt.IsZero())

	require.Len(t, store.conversations, 1)
	assert.Equal(t, "c1", store.conversations[0].Key)

	// The listed view resolves the same key and includes the row exactly once.
	list, err := svc.ListMessages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, res.Id, list.Messages[0].Id)
	assert.Equal(t, "abc", list.Messages[0].Ciphertext)
}

func TestStoreMessageCanonicalizesPairKey(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	// The contact flow created the conversation under the sorted pair key.
	existing := &entity.Conversation{
		Id:           uuid.New(),
		Key:          entity.ConversationKey("alex", "jordan"),
		ParticipantA: "alex",
		ParticipantB: "jordan",
		CreatedAt:    time.Now(),
	}
	store.conversations = append(store.conversations, existing)

	// A client naming the pair in reverse lands in the same conversation.
	res, err := svc.StoreMessage(ctx, &dto.StoreMessageRequest{
		ConversationId: "jordan:alex",
		SenderId:       "jordan",
		RecipientId:    "alex",
		Ciphertext:     "sealed",
	})
	require.NoError(t, err)
	require.Len(t, store.conversations, 1)
	require.Len(t, store.messages, 1)
	assert.Equal(t, existing.Id, store.messages[0].ConversationId)
	assert.Equal(t, res.Id, store.messages[0].Id)
}

func TestStoreMessageCreatesPairConversationUnderCanonicalKey(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	_, err := svc.StoreMessage(ctx, &dto.StoreMessageRequest{
		ConversationId: "jordan:alex",
		SenderId:       "jordan",
		RecipientId:    "alex",
		Ciphertext:     "sealed",
	})
	require.NoError(t, err)
	require.Len(t, store.conversations, 1)
	assert.Equal(t, entity.ConversationKey("alex", "jordan"), store.conversations[0].Key)
}

func TestStoreMessageRejectsBlankCiphertext(t *testing.T) {
	_, svc, _ := newMessageServiceForTest()

	_, err := svc.StoreMessage(context.Background(), &dto.StoreMessageRequest{
		ConversationId: "c1",
		SenderId:       "u1",
		RecipientId:    "u2",
		Ciphertext:     "   ",
	})
	require.Error(t, err)

	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestListMessagesOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	conversationId := uuid.New()
	store.conversations = append(store.conversations, &entity.Conversation{
		Id: conversationId, Key: "u1:u2", ParticipantA: "u1", ParticipantB: "u2",
	})
	now := time.Now()
	for i, text := range []string{"first", "second", "third"} {
		store.messages = append(store.messages, &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversationId,
			SenderId:       "u1",
			RecipientId:    "u2",
			Ciphertext:     text,
			CreatedAt:      now.Add(time.Duration(i) * time.Minute),
		})
	}

	list, err := svc.ListMessages(ctx, conversationId.String())
	require.NoError(t, err)
	require.Len(t, list.Messages, 3)
	assert.Equal(t, "first", list.Messages[0].Ciphertext)
	assert.Equal(t, "third", list.Messages[2].Ciphertext)
}

func TestListMessagesFiltersExpiredRowsBeforeSweep(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	conversationId := uuid.New()
	store.conversations = append(store.conversations, &entity.Conversation{
		Id: conversationId, Key: "u1:u2", ParticipantA: "u1", ParticipantB: "u2",
	})
	store.messages = append(store.messages,
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId,
			SenderId: "u1", RecipientId: "u2", Ciphertext: "stale",
			CreatedAt: time.Now().Add(-25 * time.Hour),
		},
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId,
			SenderId: "u1", RecipientId: "u2", Ciphertext: "fresh",
			CreatedAt: time.Now(),
		},
	)

	// No sweep has run, yet the read path must hide the expired row.
	list, err := svc.ListMessages(ctx, conversationId.String())
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "fresh", list.Messages[0].Ciphertext)
}

func TestRetentionSweepBoundary(t *testing.T) {
	ctx := context.Background()
	store, _, retention := newMessageServiceForTest()

	conversationId := uuid.New()
	store.messages = append(store.messages,
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId,
			Ciphertext: "exactly at cutoff",
			CreatedAt:  time.Now().Add(-24 * time.Hour),
		},
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId,
			Ciphertext: "inside window",
			CreatedAt:  time.Now().Add(-23 * time.Hour),
		},
	)

	// The boundary is inclusive: a row aged exactly the window is removed.
	deleted, err := retention.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	require.Len(t, store.messages, 1)
	assert.Equal(t, "inside window", store.messages[0].Ciphertext)

	// Sweeps are idempotent.
	deleted, err = retention.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestSendMessageStoresSealedTextAndMetadata(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	score := 0.9
	res, err := svc.SendMessage(ctx, &dto.SendMessageRequest{
		ConversationId: "c1",
		UserId:         "u1",
		RecipientId:    "u2",
		FinalText:      "Could we talk about this tomorrow?",
		OriginalText:   "we talk NOW",
		PreSendEmotion: "frustration",
		IntensityScore: &score,
		WasPauseTaken:  true,
		UsedSuggestion: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)

	require.Len(t, store.messages, 1)
	stored := store.messages[0]
	assert.NotEqual(t, "Could we talk about this tomorrow?", stored.Ciphertext)
	require.NotNil(t, stored.OriginalText)
	assert.Equal(t, "we talk NOW", *stored.OriginalText)
	require.NotNil(t, stored.Metadata.IntensityScore)
	assert.Equal(t, 0.9, *stored.Metadata.IntensityScore)
	assert.True(t, stored.Metadata.WasPauseTaken)
	assert.True(t, stored.Metadata.UsedSuggestion)
	require.NotNil(t, stored.Metadata.PreSendEmotion)
	assert.Equal(t, "frustration", *stored.Metadata.PreSendEmotion)
}

func TestLatestPerConversation(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	convA, convB := uuid.New(), uuid.New()
	now := time.Now()
	store.messages = append(store.messages,
		&entity.Message{Id: uuid.New(), ConversationId: convA, Ciphertext: "a-old", CreatedAt: now.Add(-2 * time.Hour)},
		&entity.Message{Id: uuid.New(), ConversationId: convA, Ciphertext: "a-new", CreatedAt: now.Add(-1 * time.Hour)},
		&entity.Message{Id: uuid.New(), ConversationId: convB, Ciphertext: "b-only", CreatedAt: now},
	)

	res, err := svc.LatestPerConversation(ctx)
	require.NoError(t, err)
	require.Len(t, res.LastMessages, 2)
	assert.Equal(t, "b-only", res.LastMessages[0].Ciphertext)
	assert.Equal(t, "a-new", res.LastMessages[1].Ciphertext)
}

func TestBehaviorFeedback(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newMessageServiceForTest()

	conversationId := uuid.New()
	store.conversations = append(store.conversations, &entity.Conversation{
		Id: conversationId, Key: "u1:u2", ParticipantA: "u1", ParticipantB: "u2",
	})

	emotion := "anger"
	high := 0.9
	low := 0.8
	store.messages = append(store.messages,
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId, CreatedAt: time.Now(),
			Metadata: entity.MessageMetadata{IntensityScore: &high, PreSendEmotion: &emotion},
		},
		&entity.Message{
			Id: uuid.New(), ConversationId: conversationId, CreatedAt: time.Now(),
			Metadata: entity.MessageMetadata{IntensityScore: &low},
		},
	)

	res, err := svc.BehaviorFeedback(ctx, conversationId.String())
	require.NoError(t, err)

	feedback := res.Feedback
	require.NotNil(t, feedback.AverageIntensity)
	assert.InDelta(t, 0.85, *feedback.AverageIntensity, 1e-9)
	assert.Equal(t, "high", feedback.RiskLevel)
	assert.Equal(t, "anger", feedback.TopEmotion)
	assert.Equal(t, coachHintHigh, feedback.CoachHint)
	assert.Equal(t, 2, feedback.SampleSize)
}

func TestBehaviorFeedbackEmptyConversation(t *testing.T) {
	_, svc, _ := newMessageServiceForTest()

	res, err := svc.BehaviorFeedback(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "low", res.Feedback.RiskLevel)
	assert.Equal(t, coachHintSteady, res.Feedback.CoachHint)
	assert.Nil(t, res.Feedback.AverageIntensity)
	assert.Equal(t, 0, res.Feedback.SampleSize)
}
