package attendance

import (
	"time"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Excuse    string  `json:"excuse,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "coordinates", Message: "latitude must be between -90 and 90, longitude between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	Day                   string     `json:"day"`
	CheckIn               time.Time  `json:"check_in"`
	CheckOut              *time.Time `json:"check_out,omitempty"`
	IsLate                bool       `json:"is_late"`
	LateMinutes           int        `json:"late_minutes"`
	ExcuseReason          *string    `json:"excuse_reason,omitempty"`
	MandatoryExcuseReason *string    `json:"mandatory_excuse_reason,omitempty"`
	LocationID            *string    `json:"location_id,omitempty"`
	LocationName          *string    `json:"location_name,omitempty"`
	Source                Source     `json:"source"`
}

// CheckInResponse wraps the created record with the policy verdicts the
// client needs to render the result screen.
type CheckInResponse struct {
	Attendance      AttendanceResponse `json:"attendance"`
	IsLate          bool               `json:"is_late"`
	LateMinutes     int                `json:"late_minutes"`
	ExcuseWasForced bool               `json:"excuse_was_forced"`
}

// ListFilter narrows attendance listings. Zero values mean no filter;
// a zero Limit returns everything.
type ListFilter struct {
	UserID   string
	FromDay  string
	ToDay    string
	LateOnly bool
	Limit    int
	Offset   int
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                    a.ID,
		UserID:                a.UserID,
		Day:                   a.Day,
		CheckIn:               a.CheckIn,
		CheckOut:              a.CheckOut,
		IsLate:                a.IsLate,
		LateMinutes:           a.LateMinutes,
		ExcuseReason:          a.ExcuseReason,
		MandatoryExcuseReason: a.MandatoryExcuseReason,
		LocationID:            a.LocationID,
		Source:                a.Source,
	}
}

func ToResponseList(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, ToResponse(a))
	}
	return out
}
