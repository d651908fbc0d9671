package settings

import "errors"

var (
	ErrInvalidClockTime  = errors.New("clock time must be HH:MM in 24-hour format")
	ErrInvalidReportDay  = errors.New("auto report day must be between 1 and 28")
	ErrInvalidAllowance  = errors.New("monthly lateness allowance must be at least 1")
	ErrInvalidTimezone   = errors.New("unknown timezone name")
	ErrThresholdOrdering = errors.New("latest allowed time must not be before attendance start time")
)
