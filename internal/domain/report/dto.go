package report

import (
	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

// GenerateReportRequest selects the employees and date range to
// aggregate. Empty UserIDs means every employee; an empty range
// defaults to the trailing 14 days.
type GenerateReportRequest struct {
	UserIDs []string `json:"user_ids,omitempty"`
	FromDay string   `json:"from_day,omitempty"`
	ToDay   string   `json:"to_day,omitempty"`
}

func (r GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.FromDay == "") != (r.ToDay == "") {
		errs = append(errs, validator.ValidationError{Field: "range", Message: "from_day and to_day must be supplied together"})
	}

	if r.FromDay != "" {
		_, fromOK := validator.IsValidDate(r.FromDay)
		if !fromOK {
			errs = append(errs, validator.ValidationError{Field: "from_day", Message: "date must be YYYY-MM-DD"})
		}
		_, toOK := validator.IsValidDate(r.ToDay)
		if !toOK {
			errs = append(errs, validator.ValidationError{Field: "to_day", Message: "date must be YYYY-MM-DD"})
		}
		if fromOK && toOK && r.ToDay < r.FromDay {
			errs = append(errs, validator.ValidationError{Field: "range", Message: "to_day must not be before from_day"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
