package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

func TestGenerateReportRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       GenerateReportRequest
		wantField string
	}{
		{"empty range is allowed", GenerateReportRequest{}, ""},
		{"valid range", GenerateReportRequest{FromDay: "2026-03-01", ToDay: "2026-03-31"}, ""},
		{"half-open range", GenerateReportRequest{FromDay: "2026-03-01"}, "range"},
		{"malformed from_day", GenerateReportRequest{FromDay: "03/01/2026", ToDay: "2026-03-31"}, "from_day"},
		{"malformed to_day", GenerateReportRequest{FromDay: "2026-03-01", ToDay: "not-a-date"}, "to_day"},
		{"reversed range", GenerateReportRequest{FromDay: "2026-03-31", ToDay: "2026-03-01"}, "range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}
