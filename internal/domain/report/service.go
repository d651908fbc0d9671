package report

import (
	"context"
)

// ReportService aggregates attendance and requests into reports. It is
// read-only and safe to run while records are being appended.
type ReportService interface {
	Generate(ctx context.Context, req GenerateReportRequest) (Report, error)

	// GenerateMonthly aggregates the prior calendar month over all
	// employees. The scheduled report job calls this.
	GenerateMonthly(ctx context.Context) (Report, error)

	// ClassifyDay resolves the status of one employee's day.
	ClassifyDay(ctx context.Context, userID, day string) (DayStatus, error)
}

// ArchiveService keeps generated monthly reports so admins can fetch
// past periods without regenerating them.
type ArchiveService interface {
	// Save stores a report under its period ("2006-01") and returns
	// the period key.
	Save(ctx context.Context, r Report) (string, error)

	// List returns the archived period keys, oldest first.
	List(ctx context.Context) ([]string, error)

	// Get loads one archived report by period key.
	Get(ctx context.Context, period string) (Report, error)
}
