package attendance

import (
	"context"
	"time"
)

// DeviceEvent is a raw punch pulled from the fingerprint machine. The
// log key deduplicates events across polling cycles.
type DeviceEvent struct {
	UserID    string
	Timestamp time.Time
	LogKey    string
}

// AttendanceService implements the check-in and check-out state
// machine for both the mobile app and the fingerprint device.
type AttendanceService interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)

	// ApplyDeviceEvent folds one device punch into the day's record: the
	// first punch of a day becomes the check-in, a later punch becomes
	// the check-out. Events already seen are ignored.
	ApplyDeviceEvent(ctx context.Context, event DeviceEvent) error

	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)
	ListMine(ctx context.Context, userID string, fromDay, toDay string) ([]AttendanceResponse, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}
