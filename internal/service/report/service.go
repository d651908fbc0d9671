package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

const dayFormat = "2006-01-02"

type service struct {
	attendance attendance.AttendanceRepository
	requests   request.RequestRepository
	users      user.UserRepository
	settings   settings.SettingsService

	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	requestRepo request.RequestRepository,
	users user.UserRepository,
	settingsSvc settings.SettingsService,
) report.ReportService {
	return &service{
		attendance: attendanceRepo,
		requests:   requestRepo,
		users:      users,
		settings:   settingsSvc,
		now:        time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req report.GenerateReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	loc := s.settings.Snapshot().Location()
	fromDay, toDay := req.FromDay, req.ToDay
	if fromDay == "" {
		// Default range is the trailing 14 days, today included.
		today := s.now().In(loc)
		toDay = today.Format(dayFormat)
		fromDay = today.AddDate(0, 0, -13).Format(dayFormat)
	}

	employees, err := s.selectEmployees(ctx, req.UserIDs)
	if err != nil {
		return report.Report{}, err
	}

	return s.aggregate(ctx, employees, fromDay, toDay)
}

func (s *service) GenerateMonthly(ctx context.Context) (report.Report, error) {
	loc := s.settings.Snapshot().Location()
	now := s.now().In(loc)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	priorStart := monthStart.AddDate(0, -1, 0)
	priorEnd := monthStart.AddDate(0, 0, -1)

	employees, err := s.selectEmployees(ctx, nil)
	if err != nil {
		return report.Report{}, err
	}

	return s.aggregate(ctx, employees, priorStart.Format(dayFormat), priorEnd.Format(dayFormat))
}

func (s *service) ClassifyDay(ctx context.Context, userID, day string) (report.DayStatus, error) {
	records, err := s.attendance.List(ctx, attendance.ListFilter{UserID: userID, FromDay: day, ToDay: day})
	if err != nil {
		return "", err
	}

	requests, err := s.requests.ListForUserInRange(ctx, userID, day, day)
	if err != nil {
		return "", err
	}

	return classify(day, records, requests), nil
}

func (s *service) selectEmployees(ctx context.Context, userIDs []string) ([]user.User, error) {
	if len(userIDs) == 0 {
		role := user.RoleEmployee
		return s.users.List(ctx, &role)
	}

	out := make([]user.User, 0, len(userIDs))
	for _, id := range userIDs {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *service) aggregate(ctx context.Context, employees []user.User, fromDay, toDay string) (report.Report, error) {
	days, err := enumerateDays(fromDay, toDay)
	if err != nil {
		return report.Report{}, err
	}

	out := report.Report{FromDay: fromDay, ToDay: toDay}
	out.Summary.EmployeeCount = len(employees)
	out.Summary.DaysInRange = len(days)

	deptLateMinutes := make(map[string]int)
	presentDays := 0

	for _, emp := range employees {
		records, err := s.attendance.List(ctx, attendance.ListFilter{
			UserID:  emp.ID,
			FromDay: fromDay,
			ToDay:   toDay,
		})
		if err != nil {
			return report.Report{}, err
		}

		empRequests, err := s.requests.ListForUserInRange(ctx, emp.ID, fromDay, toDay)
		if err != nil {
			return report.Report{}, err
		}

		row := report.EmployeeReport{
			UserID:     emp.ID,
			Name:       emp.Name,
			Department: emp.Department,
		}

		recordsByDay := make(map[string]attendance.Attendance, len(records))
		for _, r := range records {
			recordsByDay[r.Day] = r
		}

		for _, day := range days {
			switch classify(day, records, empRequests) {
			case report.StatusPresent:
				presentDays++
			case report.StatusLate:
				presentDays++
				rec := recordsByDay[day]
				row.LateDays++
				row.TotalLateMin += rec.LateMinutes
				row.Details = append(row.Details, report.LateDayDetail{
					Day:         day,
					LateMinutes: rec.LateMinutes,
				})
			case report.StatusUnjustified:
				row.UnjustifiedDays++
			}
		}

		row.TotalLateHours = formatHours(row.TotalLateMin)
		if row.LateDays > 0 {
			// Keep one decimal, matching the hours rendering precision.
			row.AvgLateMinutes = math.Round(float64(row.TotalLateMin)/float64(row.LateDays)*10) / 10
			deptLateMinutes[emp.Department] += row.TotalLateMin
			out.LateList = append(out.LateList, row)
		}

		out.Summary.TotalLateness += row.LateDays
		out.Summary.UnjustifiedAbsences += row.UnjustifiedDays
		out.Employees = append(out.Employees, row)
	}

	if len(employees) > 0 && len(days) > 0 {
		out.Summary.AttendanceRate = float64(presentDays) / float64(len(employees)*len(days))
		out.Summary.AttendanceRatePct = int(math.Round(out.Summary.AttendanceRate * 100))
	}

	for dept, mins := range deptLateMinutes {
		if mins > out.Summary.HighestLateDeptMins ||
			(mins == out.Summary.HighestLateDeptMins && dept < out.Summary.HighestLateDept) {
			out.Summary.HighestLateDept = dept
			out.Summary.HighestLateDeptMins = mins
		}
	}

	sort.Slice(out.LateList, func(i, j int) bool {
		return out.LateList[i].TotalLateMin > out.LateList[j].TotalLateMin
	})

	return out, nil
}

// classify resolves one day's status. Attendance wins over requests,
// approved leave wins over excuses, and a day with nothing on file is
// unjustified.
func classify(day string, records []attendance.Attendance, requests []request.Request) report.DayStatus {
	for _, r := range records {
		if r.Day == day {
			if r.IsLate {
				return report.StatusLate
			}
			return report.StatusPresent
		}
	}

	for _, r := range requests {
		if r.Type == request.TypeLeave && r.Status == request.StatusApproved && r.Covers(day) {
			return report.StatusOnLeave
		}
	}

	for _, r := range requests {
		if r.Type != request.TypeExcuse || !r.Covers(day) {
			continue
		}
		switch r.Status {
		case request.StatusApproved:
			return report.StatusExcuseAccepted
		case request.StatusRejected:
			return report.StatusExcuseRejected
		default:
			return report.StatusUnderReview
		}
	}

	return report.StatusUnjustified
}

func enumerateDays(fromDay, toDay string) ([]string, error) {
	start, err := time.Parse(dayFormat, fromDay)
	if err != nil {
		return nil, fmt.Errorf("invalid from_day %q: %w", fromDay, err)
	}
	end, err := time.Parse(dayFormat, toDay)
	if err != nil {
		return nil, fmt.Errorf("invalid to_day %q: %w", toDay, err)
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days, nil
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1f", float64(minutes)/60)
}
