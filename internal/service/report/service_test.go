package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) error {
	f.records = append(f.records, a)
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDay(ctx context.Context, userID, day string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByDeviceLogKey(ctx context.Context, logKey string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	return nil
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
		out = append(out, a)
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests []request.Request
}

func (f *fakeRequestRepo) Create(ctx context.Context, r request.Request) error {
	f.requests = append(f.requests, r)
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	return request.Request{}, request.ErrRequestNotFound
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status request.RequestStatus, decidedBy string) error {
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter request.ListFilter) ([]request.Request, error) {
	return f.requests, nil
}

func (f *fakeRequestRepo) ListForUserInRange(ctx context.Context, userID, fromDay, toDay string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error   { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	if role == nil {
		return f.users, nil
	}
	var out []user.User
	for _, u := range f.users {
		if u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	var ids []string
	for _, u := range f.users {
		if u.Role == role {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type fakeSettingsService struct {
	current settings.SystemSettings
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.SystemSettings, error) {
	return f.current, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SystemSettings, error) {
	return f.current, nil
}

func (f *fakeSettingsService) Snapshot() settings.SystemSettings { return f.current }

func newTestService(users []user.User, records []attendance.Attendance, requests []request.Request) *service {
	cfg := settings.Defaults()
	cfg.Timezone = "UTC"

	svc := NewReportService(
		&fakeAttendanceRepo{records: records},
		&fakeRequestRepo{requests: requests},
		&fakeUserRepo{users: users},
		&fakeSettingsService{current: cfg},
	).(*service)
	return svc
}

func day(t time.Time) string { return t.Format("2006-01-02") }

func TestClassifyDayPrecedence(t *testing.T) {
	emp := user.User{ID: "emp-1", Name: "Sara", Role: user.RoleEmployee}
	dur := 3

	records := []attendance.Attendance{
		{UserID: "emp-1", Day: "2026-03-02", IsLate: false},
		{UserID: "emp-1", Day: "2026-03-03", IsLate: true, LateMinutes: 10},
	}
	requests := []request.Request{
		// Approved leave covering 2026-03-04 through 2026-03-06.
		{UserID: "emp-1", Type: request.TypeLeave, Date: "2026-03-04", DurationDays: &dur, Status: request.StatusApproved},
		{UserID: "emp-1", Type: request.TypeExcuse, Date: "2026-03-09", Status: request.StatusApproved},
		{UserID: "emp-1", Type: request.TypeExcuse, Date: "2026-03-10", Status: request.StatusRejected},
		{UserID: "emp-1", Type: request.TypeExcuse, Date: "2026-03-11", Status: request.StatusPending},
		// Attendance on the same day outranks the excuse.
		{UserID: "emp-1", Type: request.TypeExcuse, Date: "2026-03-02", Status: request.StatusApproved},
	}

	svc := newTestService([]user.User{emp}, records, requests)
	ctx := context.Background()

	cases := map[string]report.DayStatus{
		"2026-03-02": report.StatusPresent,
		"2026-03-03": report.StatusLate,
		"2026-03-04": report.StatusOnLeave,
		"2026-03-05": report.StatusOnLeave,
		"2026-03-06": report.StatusOnLeave,
		"2026-03-07": report.StatusUnjustified,
		"2026-03-09": report.StatusExcuseAccepted,
		"2026-03-10": report.StatusExcuseRejected,
		"2026-03-11": report.StatusUnderReview,
	}

	for d, want := range cases {
		got, err := svc.ClassifyDay(ctx, "emp-1", d)
		require.NoError(t, err)
		assert.Equal(t, want, got, "day %s", d)
	}
}

func TestGenerateClassificationIsExhaustive(t *testing.T) {
	emp := user.User{ID: "emp-1", Name: "Sara", Department: "Engineering", Role: user.RoleEmployee}
	dur := 2

	records := []attendance.Attendance{
		{UserID: "emp-1", Day: "2026-03-02", IsLate: false},
		{UserID: "emp-1", Day: "2026-03-03", IsLate: true, LateMinutes: 12},
		{UserID: "emp-1", Day: "2026-03-06", IsLate: true, LateMinutes: 8},
	}
	requests := []request.Request{
		{UserID: "emp-1", Type: request.TypeLeave, Date: "2026-03-04", DurationDays: &dur, Status: request.StatusApproved},
		{UserID: "emp-1", Type: request.TypeExcuse, Date: "2026-03-07", Status: request.StatusPending},
	}

	svc := newTestService([]user.User{emp}, records, requests)

	got, err := svc.Generate(context.Background(), report.GenerateReportRequest{
		FromDay: "2026-03-01",
		ToDay:   "2026-03-08",
	})
	require.NoError(t, err)

	statusCounts := make(map[report.DayStatus]int)
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08"} {
		status, err := svc.ClassifyDay(context.Background(), "emp-1", d)
		require.NoError(t, err)
		statusCounts[status]++
	}

	total := 0
	for _, n := range statusCounts {
		total += n
	}
	assert.Equal(t, 8, total, "every day gets exactly one status")

	require.Len(t, got.Employees, 1)
	row := got.Employees[0]
	assert.Equal(t, 2, row.LateDays)
	assert.Equal(t, 20, row.TotalLateMin)
	assert.Equal(t, "0.3", row.TotalLateHours)
	assert.Equal(t, 10.0, row.AvgLateMinutes)
	assert.Equal(t, 2, row.UnjustifiedDays) // Mar 1 and Mar 8
	assert.Equal(t, 2, got.Summary.TotalLateness)
	assert.Equal(t, "Engineering", got.Summary.HighestLateDept)
}

func TestGenerateWeekdayWeekendMonth(t *testing.T) {
	emp := user.User{ID: "emp-1", Name: "Sara", Department: "Sales", Role: user.RoleEmployee}

	// Present every weekday in March 2026, absent on weekends, nothing
	// else on file.
	var records []attendance.Attendance
	weekdays := 0
	for d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		weekdays++
		records = append(records, attendance.Attendance{UserID: "emp-1", Day: day(d)})
	}
	require.Equal(t, 22, weekdays)

	svc := newTestService([]user.User{emp}, records, nil)

	got, err := svc.Generate(context.Background(), report.GenerateReportRequest{
		FromDay: "2026-03-01",
		ToDay:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 31, got.Summary.DaysInRange)
	assert.Equal(t, 9, got.Summary.UnjustifiedAbsences)
	assert.InDelta(t, 22.0/31.0, got.Summary.AttendanceRate, 1e-9)
	assert.Equal(t, 71, got.Summary.AttendanceRatePct)
	assert.Empty(t, got.LateList)
}

func TestGenerateZeroRecordEmployeeStaysInDenominator(t *testing.T) {
	present := user.User{ID: "emp-1", Name: "Sara", Department: "Sales", Role: user.RoleEmployee}
	absent := user.User{ID: "emp-2", Name: "Ali", Department: "Sales", Role: user.RoleEmployee}

	records := []attendance.Attendance{
		{UserID: "emp-1", Day: "2026-03-02"},
		{UserID: "emp-1", Day: "2026-03-03"},
	}

	svc := newTestService([]user.User{present, absent}, records, nil)

	got, err := svc.Generate(context.Background(), report.GenerateReportRequest{
		FromDay: "2026-03-02",
		ToDay:   "2026-03-03",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Summary.EmployeeCount)
	// 2 present days over 2 employees x 2 days.
	assert.InDelta(t, 0.5, got.Summary.AttendanceRate, 1e-9)
	assert.Equal(t, 50, got.Summary.AttendanceRatePct)
	assert.Equal(t, 2, got.Summary.UnjustifiedAbsences)
	assert.Empty(t, got.LateList)
}

func TestGenerateMonthlyUsesPriorMonth(t *testing.T) {
	emp := user.User{ID: "emp-1", Name: "Sara", Department: "Sales", Role: user.RoleEmployee}
	records := []attendance.Attendance{
		{UserID: "emp-1", Day: "2026-02-02", IsLate: true, LateMinutes: 30},
		// Outside the prior month, must not be counted.
		{UserID: "emp-1", Day: "2026-03-02", IsLate: true, LateMinutes: 99},
	}

	svc := newTestService([]user.User{emp}, records, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 25, 10, 0, 0, 0, time.UTC) }

	got, err := svc.GenerateMonthly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", got.FromDay)
	assert.Equal(t, "2026-02-28", got.ToDay)
	require.Len(t, got.LateList, 1)
	assert.Equal(t, 30, got.LateList[0].TotalLateMin)
	assert.Equal(t, "0.5", got.LateList[0].TotalLateHours)
}

func TestGenerateDefaultRangeIsTrailingFortnight(t *testing.T) {
	emp := user.User{ID: "emp-1", Name: "Sara", Role: user.RoleEmployee}
	svc := newTestService([]user.User{emp}, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC) }

	got, err := svc.Generate(context.Background(), report.GenerateReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-07", got.FromDay)
	assert.Equal(t, "2026-03-20", got.ToDay)
	assert.Equal(t, 14, got.Summary.DaysInRange)
}
