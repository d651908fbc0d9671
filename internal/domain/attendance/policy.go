package attendance

import (
	"math"
	"time"
)

// Lateness is the result of comparing a check-in time against the
// configured daily threshold.
type Lateness struct {
	IsLate      bool
	LateMinutes int
	Threshold   time.Time
}

// EvaluateLateness compares checkIn against the latest allowed clock
// time for that day. latestAllowed is a wall-clock string such as
// "08:15"; the threshold is built on checkIn's own date in loc.
// Checking in exactly at the threshold is on time. Late minutes are
// rounded to the nearest whole minute.
func EvaluateLateness(checkIn time.Time, latestAllowed string, loc *time.Location) (Lateness, error) {
	wall, err := time.ParseInLocation("15:04", latestAllowed, loc)
	if err != nil {
		return Lateness{}, err
	}

	local := checkIn.In(loc)
	threshold := time.Date(local.Year(), local.Month(), local.Day(),
		wall.Hour(), wall.Minute(), 0, 0, loc)

	if !local.After(threshold) {
		return Lateness{Threshold: threshold}, nil
	}

	minutes := int(math.Round(local.Sub(threshold).Minutes()))
	return Lateness{IsLate: true, LateMinutes: minutes, Threshold: threshold}, nil
}

// RequiresMandatoryExcuse reports whether the late check-in currently
// being made pushes the employee to or past the monthly allowance.
// lateCountSoFar counts prior late days this month, excluding the
// attempt in flight.
func RequiresMandatoryExcuse(lateCountSoFar, allowedPerMonth int) bool {
	return lateCountSoFar+1 >= allowedPerMonth
}
