package settings

import (
	"time"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest carries a complete settings document. Saves
// replace the stored configuration wholesale, so every field must be
// supplied.
type UpdateSettingsRequest struct {
	AttendanceStartTime                 string `json:"attendance_start_time"`
	LatestAllowedTime                   string `json:"latest_allowed_time"`
	AllowedLatenessPerMonthBeforeReason int    `json:"allowed_lateness_per_month_before_reason"`
	Timezone                            string `json:"timezone"`

	MorningReminderEnabled         bool   `json:"morning_reminder_enabled"`
	MorningReminderTime            string `json:"morning_reminder_time"`
	InstantLateNotificationEnabled bool   `json:"instant_late_notification_enabled"`
	InstantLateMessageTemplate     string `json:"instant_late_message_template"`
	AutoRequestReasonEnabled       bool   `json:"auto_request_reason_enabled"`
	AutoRequestMessageTemplate     string `json:"auto_request_message_template"`

	AutoReportDay                      int  `json:"auto_report_day"`
	ReportIncludeLateList              bool `json:"report_include_late_list"`
	ReportIncludeTotalLateHours        bool `json:"report_include_total_late_hours"`
	ReportIncludeUnexcusedAbsences     bool `json:"report_include_unexcused_absences"`
	ReportIncludeLeaveAndExcuseSummary bool `json:"report_include_leave_and_excuse_summary"`
	ReportIncludeDepartmentComparison  bool `json:"report_include_department_comparison"`
	ExportPDF                          bool `json:"export_pdf"`
	ExportExcel                        bool `json:"export_excel"`

	FingerprintAPIURL string `json:"fingerprint_api_url"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]string{
		"attendance_start_time": r.AttendanceStartTime,
		"latest_allowed_time":   r.LatestAllowedTime,
		"morning_reminder_time": r.MorningReminderTime,
	} {
		if !validator.IsValidClockTime(value) {
			errs = append(errs, validator.ValidationError{Field: field, Message: ErrInvalidClockTime.Error()})
		}
	}

	if r.AllowedLatenessPerMonthBeforeReason < 1 {
		errs = append(errs, validator.ValidationError{Field: "allowed_lateness_per_month_before_reason", Message: ErrInvalidAllowance.Error()})
	}

	if r.AutoReportDay < 1 || r.AutoReportDay > 28 {
		errs = append(errs, validator.ValidationError{Field: "auto_report_day", Message: ErrInvalidReportDay.Error()})
	}

	if _, err := time.LoadLocation(r.Timezone); err != nil {
		errs = append(errs, validator.ValidationError{Field: "timezone", Message: ErrInvalidTimezone.Error()})
	}

	if validator.IsValidClockTime(r.AttendanceStartTime) && validator.IsValidClockTime(r.LatestAllowedTime) &&
		r.LatestAllowedTime < r.AttendanceStartTime {
		errs = append(errs, validator.ValidationError{Field: "latest_allowed_time", Message: ErrThresholdOrdering.Error()})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity builds the settings the request replaces the stored row
// with.
func (r UpdateSettingsRequest) ToEntity() SystemSettings {
	return SystemSettings{
		AttendanceStartTime:                 r.AttendanceStartTime,
		LatestAllowedTime:                   r.LatestAllowedTime,
		AllowedLatenessPerMonthBeforeReason: r.AllowedLatenessPerMonthBeforeReason,
		Timezone:                            r.Timezone,
		MorningReminderEnabled:              r.MorningReminderEnabled,
		MorningReminderTime:                 r.MorningReminderTime,
		InstantLateNotificationEnabled:      r.InstantLateNotificationEnabled,
		InstantLateMessageTemplate:          r.InstantLateMessageTemplate,
		AutoRequestReasonEnabled:            r.AutoRequestReasonEnabled,
		AutoRequestMessageTemplate:          r.AutoRequestMessageTemplate,
		AutoReportDay:                       r.AutoReportDay,
		ReportIncludeLateList:               r.ReportIncludeLateList,
		ReportIncludeTotalLateHours:         r.ReportIncludeTotalLateHours,
		ReportIncludeUnexcusedAbsences:      r.ReportIncludeUnexcusedAbsences,
		ReportIncludeLeaveAndExcuseSummary:  r.ReportIncludeLeaveAndExcuseSummary,
		ReportIncludeDepartmentComparison:   r.ReportIncludeDepartmentComparison,
		ExportPDF:                           r.ExportPDF,
		ExportExcel:                         r.ExportExcel,
		FingerprintAPIURL:                   r.FingerprintAPIURL,
	}
}
