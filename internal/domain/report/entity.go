package report

// DayStatus classifies one employee's calendar day. The classifications
// are mutually exclusive: every day in a report range gets exactly one.
type DayStatus string

const (
	StatusPresent        DayStatus = "present"
	StatusLate           DayStatus = "late"
	StatusOnLeave        DayStatus = "on_leave"
	StatusExcuseAccepted DayStatus = "excuse_accepted"
	StatusExcuseRejected DayStatus = "excuse_rejected"
	StatusUnderReview    DayStatus = "under_review"
	StatusUnjustified    DayStatus = "unjustified"
)

// LateDayDetail is one late day inside an employee's report row.
type LateDayDetail struct {
	Day         string `json:"day"`
	LateMinutes int    `json:"late_minutes"`
}

// EmployeeReport aggregates one employee over the report range. Only
// employees with at least one late day appear in the late list, but
// every employee contributes to the attendance-rate denominator.
type EmployeeReport struct {
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Department      string          `json:"department"`
	LateDays        int             `json:"late_days"`
	TotalLateMin    int             `json:"total_late_minutes"`
	TotalLateHours  string          `json:"total_late_hours"`
	AvgLateMinutes  float64         `json:"avg_late_minutes"`
	UnjustifiedDays int             `json:"unjustified_days"`
	Details         []LateDayDetail `json:"details,omitempty"`
}

// Summary is the global aggregate across the employee set.
type Summary struct {
	TotalLateness       int     `json:"total_lateness"`
	AttendanceRate      float64 `json:"attendance_rate"` // exact ratio in [0, 1]
	AttendanceRatePct   int     `json:"attendance_rate_pct"`
	UnjustifiedAbsences int     `json:"unjustified_absences"`
	HighestLateDept     string  `json:"highest_late_department"`
	HighestLateDeptMins int     `json:"highest_late_department_minutes"`
	EmployeeCount       int     `json:"employee_count"`
	DaysInRange         int     `json:"days_in_range"`
}

// Report is a full aggregation over a date range.
type Report struct {
	FromDay   string           `json:"from_day"`
	ToDay     string           `json:"to_day"`
	Employees []EmployeeReport `json:"employees"`
	LateList  []EmployeeReport `json:"late_list"`
	Summary   Summary          `json:"summary"`
}
