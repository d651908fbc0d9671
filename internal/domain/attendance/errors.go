package attendance

import "errors"

var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedIn      = errors.New("already checked in today")
	ErrNotCheckedIn          = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut     = errors.New("already checked out today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")
	ErrNotAtApprovedLocation = errors.New("you are not at an approved location")
	ErrExcuseRequired        = errors.New("an excuse is required for this check-in")
	ErrWrongChannel          = errors.New("record belongs to a different attendance channel")
)
