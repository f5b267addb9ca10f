package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"openchat/contract"
	"openchat/domain"
	"openchat/domain/event"
	"openchat/errors"
	"openchat/moderation"
	"openchat/repositories"
)

type IChatService interface {
	SendMessage(ctx context.Context, sender domain.UserID, chatID domain.ChatID, content string) (domain.Message, error)
	Typing(ctx context.Context, userID domain.UserID, chatID domain.ChatID)
	StopTyping(ctx context.Context, userID domain.UserID, chatID domain.ChatID)
	CreateChat(name string, isGroup bool, members []domain.UserID) (domain.Chat, error)
}

// ChatService is the send-message pipeline: membership check against the
// persistent chat record, moderation, persistence, then fan-out to the live
// sessions of the other members. Recipients always come from the chat store;
// whatever recipient list a client might send along is ignored.
type ChatService struct {
	chats     repositories.IChatRepository
	messages  repositories.IMessageRepository
	fanout    contract.IFanout
	moderator *moderation.Moderator
}

func NewChatService(
	chats repositories.IChatRepository,
	messages repositories.IMessageRepository,
	fanout contract.IFanout,
	moderator *moderation.Moderator,
) *ChatService {
	return &ChatService{chats: chats, messages: messages, fanout: fanout, moderator: moderator}
}

func (s *ChatService) SendMessage(ctx context.Context, sender domain.UserID, chatID domain.ChatID, content string) (domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, errors.ErrEmptyMessage
	}

	chat, err := s.chats.GetChat(chatID)
	if err != nil {
		return domain.Message{}, err
	}
	if !chat.HasMember(sender) {
		return domain.Message{}, errors.ErrNotChatMember
	}

	if s.moderator != nil {
		content = s.moderator.Censor(content)
	}

	message := domain.Message{
		ID:       uuid.New(),
		ChatID:   chatID,
		SenderID: sender,
		Content:  content,
		SentAt:   time.Now().UTC(),
	}
	if err := s.messages.StoreMessage(message); err != nil {
		return domain.Message{}, err
	}

	s.fanout.Deliver(ctx, sender, chat.Members, event.MessageReceived{
		ID:       message.ID,
		ChatID:   message.ChatID,
		SenderID: message.SenderID,
		Content:  message.Content,
		SentAt:   message.SentAt,
	})
	return message, nil
}

// Typing is ephemeral: nothing is persisted, nothing is retried, and there
// is no rate limiting here. A production deployment should throttle these
// per sender.
func (s *ChatService) Typing(ctx context.Context, userID domain.UserID, chatID domain.ChatID) {
	s.fanout.BroadcastToRoom(ctx, chatID, userID, event.Typing{ChatID: chatID, UserID: userID})
}

func (s *ChatService) StopTyping(ctx context.Context, userID domain.UserID, chatID domain.ChatID) {
	s.fanout.BroadcastToRoom(ctx, chatID, userID, event.StopTyping{ChatID: chatID, UserID: userID})
}

func (s *ChatService) CreateChat(name string, isGroup bool, members []domain.UserID) (domain.Chat, error) {
	return s.chats.CreateChat(name, isGroup, members)
}
