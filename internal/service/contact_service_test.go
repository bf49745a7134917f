package service

import (
	"context"
	"testing"
	"time"

	"xlai-be/internal/entity"
	"xlai-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListContacts(t *testing.T) {
	ctx := context.Background()
	store, factory := newMemoryFactory()
	svc := NewContactService(factory, nil)

	for _, h := range []struct{ handle, name string }{
		{"alex", "Alex"}, {"jordan", "Jordan"}, {"user_a", "User A"},
	} {
		store.users = append(store.users, &entity.User{
			Id: uuid.New(), Handle: h.handle, DisplayName: h.name, CreatedAt: time.Now(),
		})
	}

	res, err := svc.ListContacts(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, res.Contacts, 2)

	// The caller never appears in their own contact list.
	for _, c := range res.Contacts {
		assert.NotEqual(t, "alex", c.Id)
		assert.NotEmpty(t, c.ConversationId)
		// No hub configured: presence fails open to offline.
		assert.Equal(t, "offline", c.Status)
	}

	// One conversation per pair, created on first listing.
	require.Len(t, store.conversations, 2)
	assert.Equal(t, entity.ConversationKey("alex", "jordan"), store.conversations[0].Key)

	// A second listing reuses the same conversations.
	res2, err := svc.ListContacts(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, res2.Contacts, 2)
	assert.Len(t, store.conversations, 2)
	assert.Equal(t, res.Contacts[0].ConversationId, res2.Contacts[0].ConversationId)
}

func TestListContactsRequiresUserId(t *testing.T) {
	_, factory := newMemoryFactory()
	svc := NewContactService(factory, nil)

	_, err := svc.ListContacts(context.Background(), "")
	require.Error(t, err)
	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
