package attendance

import (
	"time"
)

// Source identifies which channel produced an attendance record.
type Source string

const (
	SourceApp    Source = "app"
	SourceDevice Source = "device"
)

// Attendance is one employee's record for one calendar day. At most one
// record exists per (user, day); the database enforces this with a
// unique index so concurrent check-ins cannot double-insert.
type Attendance struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	Day      string     `json:"day"` // YYYY-MM-DD in the system timezone
	CheckIn  time.Time  `json:"check_in"`
	CheckOut *time.Time `json:"check_out,omitempty"`

	IsLate      bool `json:"is_late"`
	LateMinutes int  `json:"late_minutes"`

	// ExcuseReason is the free-text note an employee may attach to any
	// check-in. MandatoryExcuseReason is set only when the escalation
	// policy forced one.
	ExcuseReason          *string `json:"excuse_reason,omitempty"`
	MandatoryExcuseReason *string `json:"mandatory_excuse_reason,omitempty"`

	// LocationID is the approved location the check-in matched. Device
	// punches carry no coordinates, so it stays nil for those.
	LocationID *string `json:"location_id,omitempty"`

	Source       Source  `json:"source"`
	DeviceLogKey *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// DayKey formats a timestamp into the canonical day string used for the
// per-user uniqueness constraint.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
