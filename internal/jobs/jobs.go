// Package jobs wires the scheduled background work: the morning
// check-in reminder, the automatic monthly report, and the fingerprint
// terminal sync.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
	"github.com/qssun/attendance-backend-go/internal/pkg/cron"
	"github.com/qssun/attendance-backend-go/internal/pkg/email"
	"github.com/qssun/attendance-backend-go/internal/pkg/fingerprint"
)

type Jobs struct {
	settingsService   settings.SettingsService
	notifService      notification.Service
	reportService     report.ReportService
	archiveService    report.ArchiveService
	emailService      email.EmailService
	attendanceService attendance.AttendanceService
	users             user.UserRepository

	// nil when the personnel-API integration is disabled.
	fingerprintClient *fingerprint.Client
	pollInterval      time.Duration

	// Dedup markers so a job firing twice inside its window stays a
	// no-op. Jobs run on a single scheduler goroutine each, so plain
	// fields are enough.
	lastReminderDay string // "2006-01-02"
	lastReportTag   string // "2006-01"
	lastDeviceSync  time.Time

	now func() time.Time
}

func New(
	settingsService settings.SettingsService,
	notifService notification.Service,
	reportService report.ReportService,
	archiveService report.ArchiveService,
	emailService email.EmailService,
	attendanceService attendance.AttendanceService,
	users user.UserRepository,
	fingerprintClient *fingerprint.Client,
	pollInterval time.Duration,
) *Jobs {
	return &Jobs{
		settingsService:   settingsService,
		notifService:      notifService,
		reportService:     reportService,
		archiveService:    archiveService,
		emailService:      emailService,
		attendanceService: attendanceService,
		users:             users,
		fingerprintClient: fingerprintClient,
		pollInterval:      pollInterval,
		lastDeviceSync:    time.Now().Add(-24 * time.Hour),
		now:               time.Now,
	}
}

// Register adds all jobs to the scheduler. The reminder and report
// jobs tick frequently and decide internally whether their moment has
// come; the tick interval only bounds the firing latency.
func (j *Jobs) Register(s *cron.Scheduler) {
	s.AddJob("morning_reminder", 30*time.Second, j.MorningReminder)
	s.AddJob("monthly_report", 10*time.Minute, j.MonthlyReport)
	if j.fingerprintClient != nil {
		s.AddJob("device_sync", j.pollInterval, j.DeviceSync)
	}
}

// MorningReminder broadcasts the daily check-in reminder once the
// configured clock time passes in the configured timezone.
func (j *Jobs) MorningReminder(ctx context.Context) error {
	cfg := j.settingsService.Snapshot()
	if !cfg.MorningReminderEnabled {
		return nil
	}

	now := j.now().In(cfg.Location())
	day := now.Format("2006-01-02")
	if j.lastReminderDay == day {
		return nil
	}
	if now.Format("15:04") < cfg.MorningReminderTime {
		return nil
	}
	j.lastReminderDay = day

	return j.notifService.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "Good morning",
		Message: fmt.Sprintf("Don't forget to check in. Attendance opens at %s.", cfg.AttendanceStartTime),
		Type:    notification.TypeMorningReminder,
	})
}

// MonthlyReport generates the prior-month report on the configured day
// of month and notifies every admin.
func (j *Jobs) MonthlyReport(ctx context.Context) error {
	cfg := j.settingsService.Snapshot()

	now := j.now().In(cfg.Location())
	if now.Day() != cfg.AutoReportDay {
		return nil
	}
	tag := now.Format("2006-01")
	if j.lastReportTag == tag {
		return nil
	}
	j.lastReportTag = tag

	result, err := j.reportService.GenerateMonthly(ctx)
	if err != nil {
		return fmt.Errorf("generate monthly report: %w", err)
	}

	if _, err := j.archiveService.Save(ctx, result); err != nil {
		slog.Error("Archive monthly report failed", "error", err)
	}

	adminRole := user.RoleAdmin
	admins, err := j.users.List(ctx, &adminRole)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		return nil
	}

	summary := email.MonthlyReportEmail{
		FromDay:           result.FromDay,
		ToDay:             result.ToDay,
		EmployeeCount:     result.Summary.EmployeeCount,
		AttendanceRatePct: result.Summary.AttendanceRatePct,
		TotalLateness:     result.Summary.TotalLateness,
		UnjustifiedDays:   result.Summary.UnjustifiedAbsences,
		HighestLateDept:   result.Summary.HighestLateDept,
	}

	adminIDs := make([]string, 0, len(admins))
	for _, admin := range admins {
		adminIDs = append(adminIDs, admin.ID)
		if admin.Email == nil || *admin.Email == "" {
			continue
		}
		if err := j.emailService.SendMonthlyReport(*admin.Email, summary); err != nil {
			slog.Error("Monthly report email failed", "to", *admin.Email, "error", err)
		}
	}

	return j.notifService.Queue(ctx, notification.CreateNotificationRequest{
		Title: "Monthly attendance report",
		Message: fmt.Sprintf("The report for %s to %s is ready. Attendance rate: %d%%.",
			result.FromDay, result.ToDay, result.Summary.AttendanceRatePct),
		Type:    notification.TypeMonthlyReport,
		Targets: adminIDs,
	})
}

// DeviceSync pulls new punches from the fingerprint terminal and folds
// them into attendance records. Log keys make replays harmless, so the
// sync window overlaps on purpose.
func (j *Jobs) DeviceSync(ctx context.Context) error {
	since := j.lastDeviceSync.Add(-time.Minute)

	transactions, err := j.fingerprintClient.Transactions(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch device transactions: %w", err)
	}

	applied := 0
	for _, tx := range transactions {
		event := attendance.DeviceEvent{
			UserID:    tx.DeviceUserID,
			Timestamp: tx.Timestamp,
			LogKey:    tx.LogKey,
		}
		if err := j.attendanceService.ApplyDeviceEvent(ctx, event); err != nil {
			slog.Error("Device sync event failed", "log_key", tx.LogKey, "error", err)
			continue
		}
		applied++
		if tx.Timestamp.After(j.lastDeviceSync) {
			j.lastDeviceSync = tx.Timestamp
		}
	}

	if len(transactions) > 0 {
		slog.Info("Device sync completed", "fetched", len(transactions), "applied", applied)
	}
	return nil
}
