package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type service struct {
	repo      attendance.AttendanceRepository
	locations location.LocationService
	settings  settings.SettingsService
	notifier  notification.Service
	users     user.UserRepository

	now func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	repo attendance.AttendanceRepository,
	locations location.LocationService,
	settingsSvc settings.SettingsService,
	notifier notification.Service,
	users user.UserRepository,
) attendance.AttendanceService {
	return &service{
		repo:      repo,
		locations: locations,
		settings:  settingsSvc,
		notifier:  notifier,
		users:     users,
		now:       time.Now,
	}
}

// CheckIn records the employee's arrival for today. The caller must be
// inside an approved location, and once the monthly lateness allowance
// is used up a late check-in is rejected until an excuse is supplied.
func (s *service) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	cfg := s.settings.Snapshot()
	loc := cfg.Location()
	now := s.now()
	day := attendance.DayKey(now, loc)

	matched, err := s.locations.Resolve(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to resolve geofence: %w", err)
	}
	if matched == nil {
		return attendance.CheckInResponse{}, attendance.ErrNotAtApprovedLocation
	}

	lateness, err := attendance.EvaluateLateness(now, cfg.LatestAllowedTime, loc)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("invalid lateness threshold %q: %w", cfg.LatestAllowedTime, err)
	}

	excuseForced := false
	if lateness.IsLate {
		lateSoFar, err := s.lateCountThisMonth(ctx, userID, now, loc)
		if err != nil {
			return attendance.CheckInResponse{}, err
		}

		if attendance.RequiresMandatoryExcuse(lateSoFar, cfg.AllowedLatenessPerMonthBeforeReason) {
			if strings.TrimSpace(req.Excuse) == "" {
				s.notifyExcuseRequired(ctx, userID, lateSoFar+1)
				return attendance.CheckInResponse{}, attendance.ErrExcuseRequired
			}
			excuseForced = true
		}
	}

	record := attendance.Attendance{
		ID:          uuid.New().String(),
		UserID:      userID,
		Day:         day,
		CheckIn:     now,
		IsLate:      lateness.IsLate,
		LateMinutes: lateness.LateMinutes,
		LocationID:  &matched.ID,
		Source:      attendance.SourceApp,
		CreatedAt:   now,
	}

	if excuse := strings.TrimSpace(req.Excuse); excuse != "" {
		if excuseForced {
			record.MandatoryExcuseReason = &excuse
		} else {
			record.ExcuseReason = &excuse
		}
	}

	// The unique index on (user_id, day) decides the duplicate race:
	// whichever insert lands second gets ErrAlreadyCheckedIn.
	if err := s.repo.Create(ctx, record); err != nil {
		return attendance.CheckInResponse{}, err
	}

	if lateness.IsLate {
		s.notifyLateCheckIn(ctx, userID, cfg, excuseForced)
	}

	return attendance.CheckInResponse{
		Attendance:      attendance.ToResponse(record),
		IsLate:          lateness.IsLate,
		LateMinutes:     lateness.LateMinutes,
		ExcuseWasForced: excuseForced,
	}, nil
}

// CheckOut closes today's record. Device-sourced records are closed by
// the device, not the app.
func (s *service) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	cfg := s.settings.Snapshot()
	loc := cfg.Location()
	now := s.now()
	day := attendance.DayKey(now, loc)

	record, err := s.repo.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	if record.Source == attendance.SourceDevice {
		return attendance.AttendanceResponse{}, attendance.ErrWrongChannel
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !now.After(record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	if err := s.repo.SetCheckOut(ctx, record.ID, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.CheckOut = &now
	return attendance.ToResponse(record), nil
}

// ApplyDeviceEvent folds one fingerprint punch into the day's record.
func (s *service) ApplyDeviceEvent(ctx context.Context, event attendance.DeviceEvent) error {
	if _, err := s.repo.GetByDeviceLogKey(ctx, event.LogKey); err == nil {
		return nil // already applied
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return err
	}

	cfg := s.settings.Snapshot()
	loc := cfg.Location()
	day := attendance.DayKey(event.Timestamp, loc)

	record, err := s.repo.GetByUserAndDay(ctx, event.UserID, day)
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return s.deviceCheckIn(ctx, event, cfg, day)
	}

	// A later punch on an open record becomes the check-out. Punches at
	// or before the check-in time are ignored.
	if record.CheckOut != nil || !event.Timestamp.After(record.CheckIn) {
		return nil
	}

	return s.repo.SetCheckOut(ctx, record.ID, event.Timestamp)
}

func (s *service) deviceCheckIn(ctx context.Context, event attendance.DeviceEvent, cfg settings.SystemSettings, day string) error {
	lateness, err := attendance.EvaluateLateness(event.Timestamp, cfg.LatestAllowedTime, cfg.Location())
	if err != nil {
		return fmt.Errorf("invalid lateness threshold %q: %w", cfg.LatestAllowedTime, err)
	}

	logKey := event.LogKey
	record := attendance.Attendance{
		ID:           uuid.New().String(),
		UserID:       event.UserID,
		Day:          day,
		CheckIn:      event.Timestamp,
		IsLate:       lateness.IsLate,
		LateMinutes:  lateness.LateMinutes,
		Source:       attendance.SourceDevice,
		DeviceLogKey: &logKey,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return nil // lost the race to another punch, nothing to do
		}
		return err
	}

	if lateness.IsLate {
		s.notifyLateCheckIn(ctx, event.UserID, cfg, false)
	}

	return nil
}

func (s *service) GetToday(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	cfg := s.settings.Snapshot()
	day := attendance.DayKey(s.now(), cfg.Location())

	record, err := s.repo.GetByUserAndDay(ctx, userID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

func (s *service) ListMine(ctx context.Context, userID string, fromDay, toDay string) ([]attendance.AttendanceResponse, error) {
	records, err := s.repo.List(ctx, attendance.ListFilter{
		UserID:  userID,
		FromDay: fromDay,
		ToDay:   toDay,
	})
	if err != nil {
		return nil, err
	}
	return attendance.ToResponseList(records), nil
}

func (s *service) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return attendance.ToResponseList(records), nil
}

// lateCountThisMonth counts the user's late days from the first of the
// current month through today.
func (s *service) lateCountThisMonth(ctx context.Context, userID string, now time.Time, loc *time.Location) (int, error) {
	local := now.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	count, err := s.repo.CountLateDays(ctx, userID,
		monthStart.Format("2006-01-02"), local.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to count late days: %w", err)
	}
	return count, nil
}

// notifyLateCheckIn sends the instant lateness notification and, when
// the escalation fired, alerts the admins as well.
func (s *service) notifyLateCheckIn(ctx context.Context, userID string, cfg settings.SystemSettings, escalated bool) {
	if cfg.InstantLateNotificationEnabled {
		msg := strings.ReplaceAll(cfg.InstantLateMessageTemplate, "[time]", cfg.LatestAllowedTime)
		_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
			Title:   "Lateness alert",
			Message: msg,
			Type:    notification.TypeInstantLate,
			Targets: []string{userID},
		})
	}

	if !escalated || !cfg.AutoRequestReasonEnabled {
		return
	}

	lateSoFar, err := s.lateCountThisMonth(ctx, userID, s.now(), cfg.Location())
	if err != nil {
		lateSoFar = cfg.AllowedLatenessPerMonthBeforeReason
	}

	msg := strings.ReplaceAll(cfg.AutoRequestMessageTemplate, "[X]", strconv.Itoa(lateSoFar))
	_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "Lateness reason requested",
		Message: msg,
		Type:    notification.TypeLatenessEscalation,
		Targets: []string{userID},
	})

	s.notifyAdmins(ctx, userID, "has exceeded the allowed monthly lateness")
}

// notifyExcuseRequired tells the employee a reason is now mandatory and
// alerts the admins.
func (s *service) notifyExcuseRequired(ctx context.Context, userID string, attemptCount int) {
	_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "Lateness reason required",
		Message: fmt.Sprintf("You have been late %d times this month. Enter a reason before checking in.", attemptCount),
		Type:    notification.TypeLatenessEscalation,
		Targets: []string{userID},
	})

	s.notifyAdmins(ctx, userID, "has reached the monthly lateness limit and must provide a reason")
}

func (s *service) notifyAdmins(ctx context.Context, aboutUserID, detail string) {
	adminIDs, err := s.users.ListIDsByRole(ctx, user.RoleAdmin)
	if err != nil || len(adminIDs) == 0 {
		return
	}

	name := aboutUserID
	if u, err := s.users.GetByID(ctx, aboutUserID); err == nil {
		name = u.Name
	}

	_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "Administrative alert",
		Message: fmt.Sprintf("%s %s.", name, detail),
		Type:    notification.TypeLatenessEscalation,
		Targets: adminIDs,
	})
}
