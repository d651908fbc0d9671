package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, day, check_in, check_out, is_late, late_minutes,
	excuse_reason, mandatory_excuse_reason, location_id, source, device_log_key, created_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Day,
		&a.CheckIn,
		&a.CheckOut,
		&a.IsLate,
		&a.LateMinutes,
		&a.ExcuseReason,
		&a.MandatoryExcuseReason,
		&a.LocationID,
		&a.Source,
		&a.DeviceLogKey,
		&a.CreatedAt,
	)
	return a, err
}

// Create inserts a new attendance record. The unique index on
// (user_id, day) turns a concurrent duplicate check-in into a
// constraint violation, which maps to ErrAlreadyCheckedIn.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, user_id, day, check_in, check_out, is_late, late_minutes,
			excuse_reason, mandatory_excuse_reason, location_id, source, device_log_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Day,
		a.CheckIn,
		a.CheckOut,
		a.IsLate,
		a.LateMinutes,
		a.ExcuseReason,
		a.MandatoryExcuseReason,
		a.LocationID,
		string(a.Source),
		a.DeviceLogKey,
		a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}

	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByUserAndDay(ctx context.Context, userID, day string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 AND day = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by user and day: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByDeviceLogKey(ctx context.Context, logKey string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE device_log_key = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, logKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by device log key: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE attendance SET check_out = $2 WHERE id = $1 AND check_out IS NULL`

	tag, err := q.Exec(ctx, query, id, checkOut)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

func (r *attendanceRepository) CountLateDays(ctx context.Context, userID, fromDay, toDay string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance
		WHERE user_id = $1 AND is_late AND day BETWEEN $2 AND $3
	`

	var count int
	if err := q.QueryRow(ctx, query, userID, fromDay, toDay).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count late days: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE 1=1`
	args := []interface{}{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.FromDay != "" {
		args = append(args, filter.FromDay)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if filter.ToDay != "" {
		args = append(args, filter.ToDay)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	if filter.LateOnly {
		query += " AND is_late"
	}
	query += " ORDER BY day DESC, check_in DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
