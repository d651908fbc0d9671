package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create creates a new notification. A NULL targets column means the
// notification is a broadcast.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notifications (id, title, message, type, targets, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Message,
		string(n.Type),
		n.Targets,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// CreateBatch creates multiple notifications in a single statement
func (r *notificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(ns))
	valueArgs := make([]interface{}, 0, len(ns)*6)

	for i, n := range ns {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}

		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		valueArgs = append(valueArgs,
			n.ID,
			n.Title,
			n.Message,
			string(n.Type),
			n.Targets,
			n.CreatedAt,
		)
	}

	query := `
		INSERT INTO notifications (id, title, message, type, targets, created_at)
		VALUES ` + strings.Join(valueStrings, ", ")

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch insert notifications: %w", err)
	}

	return nil
}

// GetForUser returns notifications addressed to the user or to
// everyone, newest first, with the user's read state.
func (r *notificationRepository) GetForUser(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]notification.UserNotification, int, error) {
	q := GetQuerier(ctx, r.db)

	where := `(n.targets IS NULL OR $1 = ANY(n.targets))`
	if unreadOnly {
		where += ` AND nr.user_id IS NULL`
	}

	countQuery := `
		SELECT COUNT(*)
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = $1
		WHERE ` + where

	var total int
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT n.id, n.title, n.message, n.type, n.targets, n.created_at, nr.user_id IS NOT NULL AS read
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = $1
		WHERE ` + where + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []notification.UserNotification
	for rows.Next() {
		var n notification.UserNotification
		var notifType string
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &notifType, &n.Targets, &n.CreatedAt, &n.Read); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = notification.NotificationType(notifType)
		out = append(out, n)
	}

	return out, total, rows.Err()
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = $1
		WHERE (n.targets IS NULL OR $1 = ANY(n.targets)) AND nr.user_id IS NULL
	`

	var count int
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, $1, NOW()
		FROM notifications n
		WHERE n.id = ANY($2) AND (n.targets IS NULL OR $1 = ANY(n.targets))
		ON CONFLICT (notification_id, user_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, userID, ids); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, $1, NOW()
		FROM notifications n
		WHERE n.targets IS NULL OR $1 = ANY(n.targets)
		ON CONFLICT (notification_id, user_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
