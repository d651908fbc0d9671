package chat

import (
	"context"
)

// ChatRepository defines data access methods for direct messages.
type ChatRepository interface {
	Create(ctx context.Context, m Message) error

	// ListConversation returns all messages between the two users in
	// chronological order.
	ListConversation(ctx context.Context, userA, userB string) ([]Message, error)

	// MarkConversationRead marks everything sent to userID by fromID as
	// read.
	MarkConversationRead(ctx context.Context, userID, fromID string) error

	CountUnread(ctx context.Context, userID string) (int, error)
}
