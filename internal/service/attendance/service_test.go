package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Attendance // keyed by user|day
	byKey   map[string]*attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]*attendance.Attendance),
		byKey:   make(map[string]*attendance.Attendance),
	}
}

func (f *fakeAttendanceRepo) key(userID, day string) string { return userID + "|" + day }

// Create mirrors the database's unique index: insert-or-conflict under
// a single lock, so concurrent callers see exactly one winner.
func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := f.key(a.UserID, a.Day)
	if _, ok := f.records[k]; ok {
		return attendance.ErrAlreadyCheckedIn
	}
	stored := a
	f.records[k] = &stored
	if a.DeviceLogKey != nil {
		f.byKey[*a.DeviceLogKey] = &stored
	}
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			return *a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDay(ctx context.Context, userID, day string) (attendance.Attendance, error) {
	if a, ok := f.records[f.key(userID, day)]; ok {
		return *a, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByDeviceLogKey(ctx context.Context, logKey string) (attendance.Attendance, error) {
	if a, ok := f.byKey[logKey]; ok {
		return *a, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	for _, a := range f.records {
		if a.ID == id {
			a.CheckOut = &checkOut
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) CountLateDays(ctx context.Context, userID, fromDay, toDay string) (int, error) {
	count := 0
	for _, a := range f.records {
		if a.UserID == userID && a.IsLate && a.Day >= fromDay && a.Day <= toDay {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		if filter.FromDay != "" && a.Day < filter.FromDay {
			continue
		}
		if filter.ToDay != "" && a.Day > filter.ToDay {
			continue
		}
		if filter.LateOnly && !a.IsLate {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}


type fakeLocationService struct {
	locations []location.ApprovedLocation
}

func (f *fakeLocationService) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	panic("not used")
}
func (f *fakeLocationService) Update(ctx context.Context, id string, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	panic("not used")
}
func (f *fakeLocationService) Delete(ctx context.Context, id string) error { panic("not used") }
func (f *fakeLocationService) List(ctx context.Context) ([]location.LocationResponse, error) {
	panic("not used")
}
func (f *fakeLocationService) Resolve(ctx context.Context, lat, lon float64) (*location.ApprovedLocation, error) {
	return location.Match(lat, lon, f.locations), nil
}

type fakeSettingsService struct {
	current settings.SystemSettings
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.SystemSettings, error) {
	return f.current, nil
}
func (f *fakeSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SystemSettings, error) {
	panic("not used")
}
func (f *fakeSettingsService) Snapshot() settings.SystemSettings { return f.current }

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}
func (f *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	panic("not used")
}
func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	panic("not used")
}
func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	panic("not used")
}
func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { panic("not used") }

func (f *fakeNotifier) Stop() {}

func (f *fakeNotifier) ofType(t notification.NotificationType) []notification.CreateNotificationRequest {
	var out []notification.CreateNotificationRequest
	for _, n := range f.queued {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) error { panic("not used") }
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { panic("not used") }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error     { panic("not used") }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	var ids []string
	for id, u := range f.users {
		if u.Role == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fixture struct {
	svc      *service
	repo     *fakeAttendanceRepo
	notifier *fakeNotifier
	settings *fakeSettingsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := settings.Defaults()
	cfg.Timezone = "UTC"

	repo := newFakeAttendanceRepo()
	notifier := &fakeNotifier{}
	settingsSvc := &fakeSettingsService{current: cfg}

	locs := &fakeLocationService{locations: []location.ApprovedLocation{
		{ID: "loc-hq", Name: "Head Office", Latitude: 24.7136, Longitude: 46.6753, RadiusMeters: 500},
	}}

	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1":   {ID: "emp-1", Name: "Sara", Role: user.RoleEmployee},
		"admin-1": {ID: "admin-1", Name: "Omar", Role: user.RoleAdmin},
	}}

	svc := NewAttendanceService(repo, locs, settingsSvc, notifier, users).(*service)
	return &fixture{svc: svc, repo: repo, notifier: notifier, settings: settingsSvc}
}

func (f *fixture) at(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

// insideHQ is roughly 300 meters north of the approved location center.
var insideHQ = attendance.CheckInRequest{Latitude: 24.716298, Longitude: 46.6753}

func TestCheckInOnTime(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	resp, err := f.svc.CheckIn(context.Background(), "emp-1", insideHQ)
	require.NoError(t, err)

	assert.False(t, resp.IsLate)
	assert.Equal(t, 0, resp.LateMinutes)
	require.NotNil(t, resp.Attendance.LocationID)
	assert.Equal(t, "loc-hq", *resp.Attendance.LocationID)
	assert.Equal(t, attendance.SourceApp, resp.Attendance.Source)
	assert.Empty(t, f.notifier.queued)
}

func TestCheckInFiveMinutesLate(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC))

	resp, err := f.svc.CheckIn(context.Background(), "emp-1", insideHQ)
	require.NoError(t, err)

	assert.True(t, resp.IsLate)
	assert.Equal(t, 5, resp.LateMinutes)
	assert.False(t, resp.ExcuseWasForced)

	alerts := f.notifier.ofType(notification.TypeInstantLate)
	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"emp-1"}, alerts[0].Targets)
	assert.Contains(t, alerts[0].Message, "08:15")
}

func TestCheckInOutsideGeofence(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	// About 600 meters from the center, outside the 500 meter radius.
	_, err := f.svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{
		Latitude:  24.719,
		Longitude: 46.6753,
	})
	assert.ErrorIs(t, err, attendance.ErrNotAtApprovedLocation)
}

func TestCheckInDuplicateDay(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), "emp-1", insideHQ)
	require.NoError(t, err)

	f.at(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckIn(context.Background(), "emp-1", insideHQ)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	const attempts = 16
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(context.Background(), "emp-1", insideHQ)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, attendance.ErrAlreadyCheckedIn):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one concurrent check-in must win")
	assert.Equal(t, attempts-1, conflicts)

	rec, err := f.repo.GetByUserAndDay(context.Background(), "emp-1", "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, rec.CheckOut)
}

func TestCheckInThirdLateRequiresExcuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two late days earlier in the month.
	for day := 2; day <= 3; day++ {
		f.at(time.Date(2026, 3, day, 8, 30, 0, 0, time.UTC))
		_, err := f.svc.CheckIn(ctx, "emp-1", insideHQ)
		require.NoError(t, err)
	}

	// Third late arrival without an excuse is rejected.
	f.at(time.Date(2026, 3, 4, 8, 30, 0, 0, time.UTC))
	_, err := f.svc.CheckIn(ctx, "emp-1", insideHQ)
	require.ErrorIs(t, err, attendance.ErrExcuseRequired)

	escalations := f.notifier.ofType(notification.TypeLatenessEscalation)
	require.Len(t, escalations, 2)
	assert.Equal(t, []string{"emp-1"}, escalations[0].Targets)
	assert.Equal(t, []string{"admin-1"}, escalations[1].Targets)

	// Nothing was stored for the rejected attempt.
	_, err = f.repo.GetByUserAndDay(ctx, "emp-1", "2026-03-04")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	// Retrying with an excuse succeeds and stores it as mandatory.
	resp, err := f.svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{
		Latitude:  insideHQ.Latitude,
		Longitude: insideHQ.Longitude,
		Excuse:    "traffic accident on the ring road",
	})
	require.NoError(t, err)
	assert.True(t, resp.ExcuseWasForced)
	require.NotNil(t, resp.Attendance.MandatoryExcuseReason)
	assert.Equal(t, "traffic accident on the ring road", *resp.Attendance.MandatoryExcuseReason)
	assert.Nil(t, resp.Attendance.ExcuseReason)
}

func TestCheckInSecondLateDoesNotEscalate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.at(time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	_, err := f.svc.CheckIn(ctx, "emp-1", insideHQ)
	require.NoError(t, err)

	f.at(time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC))
	resp, err := f.svc.CheckIn(ctx, "emp-1", insideHQ)
	require.NoError(t, err)

	assert.False(t, resp.ExcuseWasForced)
	assert.Empty(t, f.notifier.ofType(notification.TypeLatenessEscalation))
}

func TestCheckInVoluntaryExcuseStaysOptional(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC))

	resp, err := f.svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{
		Latitude:  insideHQ.Latitude,
		Longitude: insideHQ.Longitude,
		Excuse:    "dentist appointment",
	})
	require.NoError(t, err)

	assert.False(t, resp.ExcuseWasForced)
	require.NotNil(t, resp.Attendance.ExcuseReason)
	assert.Equal(t, "dentist appointment", *resp.Attendance.ExcuseReason)
	assert.Nil(t, resp.Attendance.MandatoryExcuseReason)
}

func TestCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.at(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	_, err := f.svc.CheckIn(ctx, "emp-1", insideHQ)
	require.NoError(t, err)

	f.at(time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	resp, err := f.svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, 17, resp.CheckOut.Hour())

	_, err = f.svc.CheckOut(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutDeviceRecordRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	punch := attendance.DeviceEvent{
		UserID:    "emp-1",
		Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		LogKey:    "dev-1",
	}
	require.NoError(t, f.svc.ApplyDeviceEvent(ctx, punch))

	f.at(time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	_, err := f.svc.CheckOut(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrWrongChannel)
}

func TestApplyDeviceEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checkIn := attendance.DeviceEvent{
		UserID:    "emp-1",
		Timestamp: time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC),
		LogKey:    "dev-1",
	}
	require.NoError(t, f.svc.ApplyDeviceEvent(ctx, checkIn))

	record, err := f.repo.GetByUserAndDay(ctx, "emp-1", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, attendance.SourceDevice, record.Source)
	assert.True(t, record.IsLate)
	assert.Equal(t, 5, record.LateMinutes)
	assert.Nil(t, record.CheckOut)

	// Replaying the same log key is a no-op.
	require.NoError(t, f.svc.ApplyDeviceEvent(ctx, checkIn))

	// A punch before the check-in time is ignored.
	require.NoError(t, f.svc.ApplyDeviceEvent(ctx, attendance.DeviceEvent{
		UserID:    "emp-1",
		Timestamp: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
		LogKey:    "dev-2",
	}))
	record, err = f.repo.GetByUserAndDay(ctx, "emp-1", "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, record.CheckOut)

	// A later punch closes the day.
	require.NoError(t, f.svc.ApplyDeviceEvent(ctx, attendance.DeviceEvent{
		UserID:    "emp-1",
		Timestamp: time.Date(2026, 3, 2, 16, 45, 0, 0, time.UTC),
		LogKey:    "dev-3",
	}))
	record, err = f.repo.GetByUserAndDay(ctx, "emp-1", "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, record.CheckOut)
	assert.Equal(t, 16, record.CheckOut.Hour())
}
