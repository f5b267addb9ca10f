package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"openchat/domain"
	"openchat/domain/event"
	"openchat/errors"
	"openchat/mocks"
	"openchat/moderation"
)

func TestChatService_SendMessage(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	fanout := mocks.NewMockIFanout(ctrl)
	service := NewChatService(chats, messages, fanout, nil)

	chatID := domain.ChatID(uuid.NewString())
	sender := domain.UserID("alice")
	members := []domain.UserID{"alice", "bob", "carol"}

	// Given: a chat the sender belongs to
	chats.EXPECT().GetChat(chatID).Return(domain.Chat{ID: chatID, Members: members}, nil)
	messages.EXPECT().StoreMessage(gomock.Any()).Return(nil)

	// Then: exactly one fan-out call, recipients resolved server-side
	fanout.EXPECT().Deliver(ctx, sender, members, gomock.Any()).Do(
		func(_ context.Context, _ domain.UserID, _ []domain.UserID, e event.DomainEvent) {
			received, ok := e.(event.MessageReceived)
			req.True(ok)
			req.Equal("hello", received.Content)
			req.Equal(sender, received.SenderID)
		})

	message, err := service.SendMessage(ctx, sender, chatID, "hello")
	req.NoError(err)
	req.Equal("hello", message.Content)
	req.False(message.SentAt.IsZero())
}

func TestChatService_SendMessage_NotAMember(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	fanout := mocks.NewMockIFanout(ctrl)
	service := NewChatService(chats, messages, fanout, nil)

	chatID := domain.ChatID(uuid.NewString())
	chats.EXPECT().GetChat(chatID).Return(domain.Chat{ID: chatID, Members: []domain.UserID{"bob"}}, nil)

	// An outsider's message is rejected before storage or fan-out
	_, err := service.SendMessage(context.Background(), "mallory", chatID, "hi")
	req.ErrorIs(err, errors.ErrNotChatMember)
}

func TestChatService_SendMessage_EmptyContent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service := NewChatService(
		mocks.NewMockIChatRepository(ctrl),
		mocks.NewMockIMessageRepository(ctrl),
		mocks.NewMockIFanout(ctrl),
		nil,
	)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := service.SendMessage(context.Background(), "alice", "chat", content)
		req.ErrorIs(err, errors.ErrEmptyMessage)
	}
}

func TestChatService_SendMessage_UnknownChat(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	service := NewChatService(chats, mocks.NewMockIMessageRepository(ctrl), mocks.NewMockIFanout(ctrl), nil)

	chatID := domain.ChatID(uuid.NewString())
	chats.EXPECT().GetChat(chatID).Return(domain.Chat{}, errors.ErrChatNotFound)

	_, err := service.SendMessage(context.Background(), "alice", chatID, "hi")
	req.ErrorIs(err, errors.ErrChatNotFound)
}

func TestChatService_SendMessage_CensorsBeforePersisting(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	chats := mocks.NewMockIChatRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	fanout := mocks.NewMockIFanout(ctrl)
	moderator, err := moderation.NewModerator([]string{"badword"}, '*')
	req.NoError(err)
	service := NewChatService(chats, messages, fanout, &moderator)

	chatID := domain.ChatID(uuid.NewString())
	members := []domain.UserID{"alice", "bob"}
	chats.EXPECT().GetChat(chatID).Return(domain.Chat{ID: chatID, Members: members}, nil)

	// The stored copy and the delivered copy are both censored
	messages.EXPECT().StoreMessage(gomock.Any()).Do(func(m domain.Message) {
		req.Equal("such a *******", m.Content)
	}).Return(nil)
	fanout.EXPECT().Deliver(ctx, domain.UserID("alice"), members, gomock.Any())

	message, err := service.SendMessage(ctx, "alice", chatID, "such a badword")
	req.NoError(err)
	req.Equal("such a *******", message.Content)
}

func TestChatService_Typing_BroadcastsToRoom(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	fanout := mocks.NewMockIFanout(ctrl)
	service := NewChatService(
		mocks.NewMockIChatRepository(ctrl),
		mocks.NewMockIMessageRepository(ctrl),
		fanout,
		nil,
	)

	chatID := domain.ChatID("room")
	userID := domain.UserID("alice")

	fanout.EXPECT().BroadcastToRoom(ctx, chatID, userID, event.Typing{ChatID: chatID, UserID: userID})
	service.Typing(ctx, userID, chatID)

	fanout.EXPECT().BroadcastToRoom(ctx, chatID, userID, event.StopTyping{ChatID: chatID, UserID: userID})
	service.StopTyping(ctx, userID, chatID)

	req.NotNil(service)
}
