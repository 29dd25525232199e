package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/dto"
)

func newConversationFixture(t *testing.T) (*conversationService, *fakeUow, time.Time) {
	t.Helper()
	uow := newFakeUow()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewConversationService(&fakeFactory{uow: uow}, nopLogger{}).(*conversationService)
	svc.now = func() time.Time { return now }
	return svc, uow, now
}

func transcript(now time.Time) []dto.ChatMessageDTO {
	return []dto.ChatMessageDTO{
		{Role: "bot", Content: "Hey, Hi!", Timestamp: now},
		{Role: "user", Content: "Plan a weekend in Jaipur", Timestamp: now.Add(time.Minute)},
		{Role: "bot", Content: "Here is a plan...", Timestamp: now.Add(2 * time.Minute)},
	}
}

func TestSaveConversation(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()

	t.Run("rejects empty transcript", func(t *testing.T) {
		svc, _, _ := newConversationFixture(t)
		_, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("titles from the first user message", func(t *testing.T) {
		svc, uow, now := newConversationFixture(t)
		res, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
		require.NoError(t, err)
		assert.Equal(t, "Plan a weekend in Jaipur", res.Title)
		assert.Len(t, uow.convs.conversations, 1)
		assert.Len(t, uow.msgs.messages, 3)
	})

	t.Run("truncates long titles to fifty characters", func(t *testing.T) {
		svc, _, now := newConversationFixture(t)
		long := strings.Repeat("plan my trip ", 10)
		res, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{
			Messages: []dto.ChatMessageDTO{{Role: "user", Content: long, Timestamp: now}},
		})
		require.NoError(t, err)
		assert.Len(t, res.Title, 53)
		assert.True(t, strings.HasSuffix(res.Title, "..."))
	})

	t.Run("falls back to a dated title without user turns", func(t *testing.T) {
		svc, _, now := newConversationFixture(t)
		res, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{
			Messages: []dto.ChatMessageDTO{{Role: "bot", Content: "Hello!", Timestamp: now}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Chat Jun 1, 2025", res.Title)
	})

	t.Run("explicit title wins over generation", func(t *testing.T) {
		svc, _, now := newConversationFixture(t)
		res, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{
			Title:    "My Jaipur Plan",
			Messages: transcript(now),
		})
		require.NoError(t, err)
		assert.Equal(t, "My Jaipur Plan", res.Title)
	})

	t.Run("removes the conversation row when message insert fails", func(t *testing.T) {
		svc, uow, now := newConversationFixture(t)
		uow.msgs.createBulkErr = errors.New("disk full")

		_, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
		require.Error(t, err)
		assert.Empty(t, uow.convs.conversations, "no empty shell may remain")
		assert.Empty(t, uow.msgs.messages)
	})
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()
	otherId := uuid.New()

	svc, _, now := newConversationFixture(t)

	_, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{
		Title:    "First",
		Messages: transcript(now),
	})
	require.NoError(t, err)

	_, err = svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{
		Title:    "Second",
		Messages: transcript(now)[:1],
	})
	require.NoError(t, err)

	_, err = svc.SaveConversation(ctx, otherId, &dto.SaveConversationRequest{
		Title:    "Not mine",
		Messages: transcript(now),
	})
	require.NoError(t, err)

	list, err := svc.ListConversations(ctx, userId, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2, "only the caller's conversations appear")

	titles := []string{list[0].Title, list[1].Title}
	assert.Contains(t, titles, "First")
	assert.Contains(t, titles, "Second")

	for _, item := range list {
		if item.Title == "First" {
			assert.Equal(t, int64(3), item.MessageCount)
		}
		if item.Title == "Second" {
			assert.Equal(t, int64(1), item.MessageCount)
		}
	}

	empty, err := svc.ListConversations(ctx, uuid.New(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	t.Run("pagination windows the result", func(t *testing.T) {
		page, err := svc.ListConversations(ctx, userId, 1, 0)
		require.NoError(t, err)
		assert.Len(t, page, 1)

		rest, err := svc.ListConversations(ctx, userId, 1, 1)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.NotEqual(t, page[0].Id, rest[0].Id)

		past, err := svc.ListConversations(ctx, userId, 1, 5)
		require.NoError(t, err)
		assert.Empty(t, past)
	})
}

func TestLoadConversation(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()

	t.Run("unknown id yields not found", func(t *testing.T) {
		svc, _, _ := newConversationFixture(t)
		_, err := svc.LoadConversation(ctx, userId, uuid.New())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("replays messages in timestamp order", func(t *testing.T) {
		svc, _, now := newConversationFixture(t)

		// Save out of order on purpose.
		shuffled := []dto.ChatMessageDTO{
			{Role: "bot", Content: "third", Timestamp: now.Add(2 * time.Minute)},
			{Role: "user", Content: "first", Timestamp: now},
			{Role: "bot", Content: "second", Timestamp: now.Add(time.Minute)},
		}
		saved, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: shuffled})
		require.NoError(t, err)

		detail, err := svc.LoadConversation(ctx, userId, saved.Id)
		require.NoError(t, err)
		require.Len(t, detail.Messages, 3)
		assert.Equal(t, "first", detail.Messages[0].Content)
		assert.Equal(t, "second", detail.Messages[1].Content)
		assert.Equal(t, "third", detail.Messages[2].Content)
	})

	t.Run("cannot load another user's conversation", func(t *testing.T) {
		svc, _, now := newConversationFixture(t)
		saved, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
		require.NoError(t, err)

		_, err = svc.LoadConversation(ctx, uuid.New(), saved.Id)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()

	svc, uow, now := newConversationFixture(t)
	saved, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
	require.NoError(t, err)

	err = svc.DeleteConversation(ctx, userId, saved.Id)
	require.NoError(t, err)

	assert.Empty(t, uow.convs.conversations)
	assert.Empty(t, uow.msgs.messages, "messages may not be orphaned")

	err = svc.DeleteConversation(ctx, userId, saved.Id)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRenameConversation(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()

	svc, uow, now := newConversationFixture(t)
	saved, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
	require.NoError(t, err)

	err = svc.RenameConversation(ctx, userId, saved.Id, &dto.RenameConversationRequest{Title: "   "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.RenameConversation(ctx, userId, saved.Id, &dto.RenameConversationRequest{Title: "  Rajasthan Trip  "})
	require.NoError(t, err)
	assert.Equal(t, "Rajasthan Trip", uow.convs.conversations[0].Title)
}

func TestAppendMessages(t *testing.T) {
	ctx := context.Background()
	userId := uuid.New()

	svc, uow, now := newConversationFixture(t)
	saved, err := svc.SaveConversation(ctx, userId, &dto.SaveConversationRequest{Messages: transcript(now)})
	require.NoError(t, err)

	err = svc.AppendMessages(ctx, userId, saved.Id, &dto.AppendMessagesRequest{
		Messages: []dto.ChatMessageDTO{
			{Role: "user", Content: "What about food?", Timestamp: now.Add(3 * time.Minute)},
			{Role: "bot", Content: "Try the lassi!", Timestamp: now.Add(4 * time.Minute)},
		},
	})
	require.NoError(t, err)

	assert.Len(t, uow.msgs.messages, 5)
	assert.NotNil(t, uow.convs.conversations[0].UpdatedAt, "append must bump the activity marker")
}
