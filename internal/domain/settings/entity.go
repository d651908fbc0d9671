package settings

import (
	"time"
)

// SystemSettings is the single administrative configuration row. It is
// read on every check-in, so services work from an in-memory snapshot
// that the settings service refreshes on update.
type SystemSettings struct {
	// Attendance basics
	AttendanceStartTime                 string `json:"attendance_start_time"` // HH:MM, 24h
	LatestAllowedTime                   string `json:"latest_allowed_time"`   // HH:MM, 24h
	AllowedLatenessPerMonthBeforeReason int    `json:"allowed_lateness_per_month_before_reason"`
	Timezone                            string `json:"timezone"` // IANA name

	// Notifications
	MorningReminderEnabled         bool   `json:"morning_reminder_enabled"`
	MorningReminderTime            string `json:"morning_reminder_time"` // HH:MM
	InstantLateNotificationEnabled bool   `json:"instant_late_notification_enabled"`
	InstantLateMessageTemplate     string `json:"instant_late_message_template"` // [time] placeholder
	AutoRequestReasonEnabled       bool   `json:"auto_request_reason_enabled"`
	AutoRequestMessageTemplate     string `json:"auto_request_message_template"` // [X] placeholder

	// Monthly reports
	AutoReportDay                      int  `json:"auto_report_day"` // 1-28
	ReportIncludeLateList              bool `json:"report_include_late_list"`
	ReportIncludeTotalLateHours        bool `json:"report_include_total_late_hours"`
	ReportIncludeUnexcusedAbsences     bool `json:"report_include_unexcused_absences"`
	ReportIncludeLeaveAndExcuseSummary bool `json:"report_include_leave_and_excuse_summary"`
	ReportIncludeDepartmentComparison  bool `json:"report_include_department_comparison"`
	ExportPDF                          bool `json:"export_pdf"`
	ExportExcel                        bool `json:"export_excel"`

	// Fingerprint integration. Only the URL is stored; credentials
	// are accepted for one-shot connection tests and never persisted.
	FingerprintAPIURL string `json:"fingerprint_api_url"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Defaults returns the settings applied before an admin has ever saved
// the configuration.
func Defaults() SystemSettings {
	return SystemSettings{
		AttendanceStartTime:                 "08:00",
		LatestAllowedTime:                   "08:15",
		AllowedLatenessPerMonthBeforeReason: 3,
		Timezone:                            "Asia/Riyadh",
		MorningReminderEnabled:              true,
		MorningReminderTime:                 "07:50",
		InstantLateNotificationEnabled:      true,
		InstantLateMessageTemplate:          "You are late! The latest allowed arrival time was [time]",
		AutoRequestReasonEnabled:            true,
		AutoRequestMessageTemplate:          "You have been late [X] times this month. Please provide a reason",
		AutoReportDay:                       25,
		ReportIncludeLateList:               true,
		ReportIncludeTotalLateHours:         true,
		ReportIncludeUnexcusedAbsences:      true,
		ReportIncludeLeaveAndExcuseSummary:  true,
		ReportIncludeDepartmentComparison:   true,
		ExportPDF:                           true,
		ExportExcel:                         false,
	}
}

// Location resolves the configured timezone, falling back to UTC when
// the name does not load.
func (s SystemSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
