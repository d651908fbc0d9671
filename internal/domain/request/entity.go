package request

import (
	"time"
)

// RequestType distinguishes the two kinds of employee requests.
type RequestType string

const (
	// TypeLeave asks for days off starting at Date.
	TypeLeave RequestType = "leave"
	// TypeExcuse justifies an absence or lateness on a past Date.
	TypeExcuse RequestType = "excuse"
)

// RequestStatus tracks the admin decision.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request is an employee's leave or excuse request. DurationDays is
// only meaningful for leave requests and covers [Date, Date+Duration).
type Request struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Type         RequestType   `json:"type"`
	Date         string        `json:"date"` // YYYY-MM-DD
	DurationDays *int          `json:"duration_days,omitempty"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	DecidedBy    *string       `json:"decided_by,omitempty"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Covers reports whether the request applies to the given day. Excuse
// requests cover exactly their date; leave requests cover the whole
// duration.
func (r Request) Covers(day string) bool {
	if r.Type == TypeExcuse || r.DurationDays == nil || *r.DurationDays <= 1 {
		return r.Date == day
	}

	start, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return false
	}
	end := start.AddDate(0, 0, *r.DurationDays)
	last := end.AddDate(0, 0, -1).Format("2006-01-02")

	return day >= r.Date && day <= last
}
