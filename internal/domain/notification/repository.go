package notification

import (
	"context"
)

// UserNotification pairs a notification with one user's read state.
type UserNotification struct {
	Notification
	Read bool
}

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error

	// GetForUser returns notifications addressed to the user or to
	// everyone, newest first.
	GetForUser(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]UserNotification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
