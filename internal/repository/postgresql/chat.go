package postgresql

import (
	"context"
	"fmt"

	"github.com/qssun/attendance-backend-go/internal/domain/chat"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

type chatRepository struct {
	db *database.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *database.DB) chat.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, m chat.Message) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO chat_messages (id, from_user_id, to_user_id, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query, m.ID, m.FromUserID, m.ToUserID, m.Body, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

func (r *chatRepository) ListConversation(ctx context.Context, userA, userB string) ([]chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_user_id, to_user_id, body, read, created_at
		FROM chat_messages
		WHERE (from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1)
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.FromUserID, &m.ToUserID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *chatRepository) MarkConversationRead(ctx context.Context, userID, fromID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE chat_messages SET read = TRUE WHERE to_user_id = $1 AND from_user_id = $2 AND NOT read`

	if _, err := q.Exec(ctx, query, userID, fromID); err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}

	return nil
}

func (r *chatRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages WHERE to_user_id = $1 AND NOT read`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
