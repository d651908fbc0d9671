package response

import (
	"errors"
	"net/http"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/auth"
	"github.com/qssun/attendance-backend-go/internal/domain/chat"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrGoogleNotLinked):
		Unauthorized(w, "No account is linked to this Google identity")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrNotAtApprovedLocation):
		BadRequest(w, "You are not at an approved location", nil)
	case errors.Is(err, attendance.ErrExcuseRequired):
		BadRequest(w, "A lateness excuse is required for this check-in", map[string]string{
			"excuse": "monthly lateness allowance exceeded",
		})
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Conflict(w, "Check-out time must be after check-in time")
	case errors.Is(err, attendance.ErrWrongChannel):
		Conflict(w, "This record must be closed by its originating channel")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrAlreadyDecided):
		Conflict(w, "Request has already been decided")
	case errors.Is(err, request.ErrFutureExcuse):
		BadRequest(w, "Excuse date cannot be in the future", nil)
	case errors.Is(err, request.ErrInvalidType):
		BadRequest(w, "Invalid request type", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrInvalidClockTime),
		errors.Is(err, settings.ErrInvalidReportDay),
		errors.Is(err, settings.ErrInvalidAllowance),
		errors.Is(err, settings.ErrInvalidTimezone),
		errors.Is(err, settings.ErrThresholdOrdering):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, report.ErrArchivedNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Chat domain errors
	case errors.Is(err, chat.ErrEmptyMessage):
		BadRequest(w, "Message body is empty", nil)
	case errors.Is(err, chat.ErrSelfMessage):
		BadRequest(w, "Cannot send a message to yourself", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
