package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance
// records.
type AttendanceRepository interface {
	// Create inserts a new record. The (user_id, day) unique index makes
	// this the race-safe duplicate check: a second insert for the same
	// user and day returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, a Attendance) error

	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByUserAndDay(ctx context.Context, userID, day string) (Attendance, error)
	GetByDeviceLogKey(ctx context.Context, logKey string) (Attendance, error)

	SetCheckOut(ctx context.Context, id string, checkOut time.Time) error

	// CountLateDays counts this user's late records with day in
	// [fromDay, toDay], both inclusive.
	CountLateDays(ctx context.Context, userID, fromDay, toDay string) (int, error)

	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
}
