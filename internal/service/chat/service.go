package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/chat"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
	"github.com/qssun/attendance-backend-go/internal/pkg/sse"
)

type service struct {
	repo     chat.ChatRepository
	users    user.UserRepository
	notifier notification.Service
	hub      *sse.Hub
}

// NewChatService creates a new chat service
func NewChatService(repo chat.ChatRepository, users user.UserRepository, notifier notification.Service, hub *sse.Hub) chat.ChatService {
	return &service{repo: repo, users: users, notifier: notifier, hub: hub}
}

func (s *service) Send(ctx context.Context, fromUserID string, req chat.SendMessageRequest) (chat.Message, error) {
	if err := req.Validate(); err != nil {
		return chat.Message{}, err
	}
	if req.ToUserID == fromUserID {
		return chat.Message{}, chat.ErrSelfMessage
	}

	sender, err := s.users.GetByID(ctx, fromUserID)
	if err != nil {
		return chat.Message{}, err
	}
	if _, err := s.users.GetByID(ctx, req.ToUserID); err != nil {
		return chat.Message{}, err
	}

	m := chat.Message{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Body:       strings.TrimSpace(req.Body),
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return chat.Message{}, err
	}

	s.hub.Publish(m.ToUserID, sse.Event{
		UserID: m.ToUserID,
		Event:  "chat",
		Data:   m,
	})

	// Notification failures must not lose the message.
	if err := s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "New message",
		Message: "You have a new message from " + sender.Name,
		Type:    notification.TypeGeneral,
		Targets: []string{m.ToUserID},
	}); err != nil {
		slog.Error("Chat notification queue failed", "to", m.ToUserID, "error", err)
	}

	return m, nil
}

func (s *service) Conversation(ctx context.Context, userID, otherUserID string) ([]chat.Message, error) {
	return s.repo.ListConversation(ctx, userID, otherUserID)
}

func (s *service) MarkRead(ctx context.Context, userID, fromUserID string) error {
	return s.repo.MarkConversationRead(ctx, userID, fromUserID)
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
