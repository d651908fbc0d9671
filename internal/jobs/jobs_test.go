package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/pkg/email"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type fakeSettingsService struct {
	current settings.SystemSettings
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.SystemSettings, error) {
	return f.current, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SystemSettings, error) {
	return f.current, nil
}

func (f *fakeSettingsService) Snapshot() settings.SystemSettings {
	return f.current
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { return nil }

func (f *fakeNotifier) Stop() {}

type fakeReportService struct {
	generated int
	result    report.Report
}

func (f *fakeReportService) Generate(ctx context.Context, req report.GenerateReportRequest) (report.Report, error) {
	return f.result, nil
}

func (f *fakeReportService) GenerateMonthly(ctx context.Context) (report.Report, error) {
	f.generated++
	return f.result, nil
}

func (f *fakeReportService) ClassifyDay(ctx context.Context, userID, day string) (report.DayStatus, error) {
	return report.StatusUnjustified, nil
}

type fakeArchive struct {
	saved []report.Report
}

func (f *fakeArchive) Save(ctx context.Context, r report.Report) (string, error) {
	f.saved = append(f.saved, r)
	return "2026-02", nil
}

func (f *fakeArchive) List(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeArchive) Get(ctx context.Context, period string) (report.Report, error) {
	return report.Report{}, report.ErrArchivedNotFound
}

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) SendMonthlyReport(to string, data email.MonthlyReportEmail) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeUserRepo struct {
	admins []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error   { return nil }
func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	return f.admins, nil
}
func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	ids := make([]string, 0, len(f.admins))
	for _, a := range f.admins {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

type jobsFixture struct {
	jobs     *Jobs
	notifier *fakeNotifier
	reports  *fakeReportService
	archive  *fakeArchive
	emails   *fakeEmail
}

func newJobsFixture(cfg settings.SystemSettings) jobsFixture {
	adminEmail := "omar@example.com"
	f := jobsFixture{
		notifier: &fakeNotifier{},
		reports: &fakeReportService{
			result: report.Report{FromDay: "2026-02-01", ToDay: "2026-02-28"},
		},
		archive: &fakeArchive{},
		emails:  &fakeEmail{},
	}
	f.jobs = New(
		&fakeSettingsService{current: cfg},
		f.notifier,
		f.reports,
		f.archive,
		f.emails,
		nil,
		&fakeUserRepo{admins: []user.User{{ID: "admin-1", Email: &adminEmail}}},
		nil,
		time.Minute,
	)
	return f
}

func TestMorningReminderFiresOncePerDay(t *testing.T) {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"
	cfg.MorningReminderTime = "07:50"

	f := newJobsFixture(cfg)
	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 2, 7, 51, 0, 0, time.UTC)
	}

	require.NoError(t, f.jobs.MorningReminder(context.Background()))
	require.NoError(t, f.jobs.MorningReminder(context.Background()))

	require.Len(t, f.notifier.queued, 1)
	assert.Equal(t, notification.TypeMorningReminder, f.notifier.queued[0].Type)
	assert.Nil(t, f.notifier.queued[0].Targets, "reminder should broadcast")
}

func TestMorningReminderWaitsForConfiguredTime(t *testing.T) {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"
	cfg.MorningReminderTime = "07:50"

	f := newJobsFixture(cfg)
	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	}

	require.NoError(t, f.jobs.MorningReminder(context.Background()))
	assert.Empty(t, f.notifier.queued)
}

func TestMorningReminderDisabled(t *testing.T) {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"
	cfg.MorningReminderEnabled = false

	f := newJobsFixture(cfg)
	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}

	require.NoError(t, f.jobs.MorningReminder(context.Background()))
	assert.Empty(t, f.notifier.queued)
}

func TestMonthlyReportFiresOnConfiguredDayOnly(t *testing.T) {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"
	cfg.AutoReportDay = 25

	f := newJobsFixture(cfg)

	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 24, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, f.jobs.MonthlyReport(context.Background()))
	assert.Zero(t, f.reports.generated)

	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, f.jobs.MonthlyReport(context.Background()))
	require.NoError(t, f.jobs.MonthlyReport(context.Background()))

	assert.Equal(t, 1, f.reports.generated)
	require.Len(t, f.archive.saved, 1)
	assert.Equal(t, []string{"omar@example.com"}, f.emails.sent)
	require.Len(t, f.notifier.queued, 1)
	assert.Equal(t, notification.TypeMonthlyReport, f.notifier.queued[0].Type)
	assert.Equal(t, []string{"admin-1"}, f.notifier.queued[0].Targets)
}

func TestMonthlyReportFiresAgainNextMonth(t *testing.T) {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"
	cfg.AutoReportDay = 25

	f := newJobsFixture(cfg)

	f.jobs.now = func() time.Time {
		return time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, f.jobs.MonthlyReport(context.Background()))

	f.jobs.now = func() time.Time {
		return time.Date(2026, 4, 25, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, f.jobs.MonthlyReport(context.Background()))

	assert.Equal(t, 2, f.reports.generated)
}
