package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, user_id, type, date, duration_days, reason, status, decided_by, decided_at, created_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var r request.Request
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Type,
		&r.Date,
		&r.DurationDays,
		&r.Reason,
		&r.Status,
		&r.DecidedBy,
		&r.DecidedAt,
		&r.CreatedAt,
	)
	return r, err
}

func (r *requestRepository) Create(ctx context.Context, req request.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (id, user_id, type, date, duration_days, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		req.ID,
		req.UserID,
		string(req.Type),
		req.Date,
		req.DurationDays,
		req.Reason,
		string(req.Status),
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

// UpdateStatus decides a pending request. The status guard makes the
// pending to decided transition one-shot even under concurrent admins.
func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status request.RequestStatus, decidedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests
		SET status = $2, decided_by = $3, decided_at = $4
		WHERE id = $1 AND status = $5
	`

	tag, err := q.Exec(ctx, query, id, string(status), decidedBy, time.Now(), string(request.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return request.ErrAlreadyDecided
	}

	return nil
}

func (r *requestRepository) List(ctx context.Context, filter request.ListFilter) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE 1=1`
	args := []interface{}{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *requestRepository) ListForUserInRange(ctx context.Context, userID, fromDay, toDay string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	// Leave requests starting before the range can still cover days
	// inside it, so filter only on the far edge and let the caller's
	// coverage check do the rest.
	query := `SELECT ` + requestColumns + ` FROM requests WHERE user_id = $1 AND date <= $2 ORDER BY date`

	rows, err := q.Query(ctx, query, userID, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests in range: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
