package chat

import (
	"context"
)

// ChatService handles direct messaging between employees and admins.
type ChatService interface {
	Send(ctx context.Context, fromUserID string, req SendMessageRequest) (Message, error)
	Conversation(ctx context.Context, userID, otherUserID string) ([]Message, error)
	MarkRead(ctx context.Context, userID, fromUserID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}
