package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

func TestCreateRequestRequestValidate(t *testing.T) {
	three := 3

	tests := []struct {
		name      string
		req       CreateRequestRequest
		wantField string
	}{
		{"valid excuse", CreateRequestRequest{Type: TypeExcuse, Date: "2026-03-02", Reason: "doctor visit"}, ""},
		{"valid leave", CreateRequestRequest{Type: TypeLeave, Date: "2026-03-02", DurationDays: &three, Reason: "vacation"}, ""},
		{"unknown type", CreateRequestRequest{Type: "overtime", Date: "2026-03-02", Reason: "x"}, "type"},
		{"malformed date", CreateRequestRequest{Type: TypeExcuse, Date: "02-03-2026", Reason: "x"}, "date"},
		{"missing reason", CreateRequestRequest{Type: TypeExcuse, Date: "2026-03-02", Reason: "  "}, "reason"},
		{"leave without duration", CreateRequestRequest{Type: TypeLeave, Date: "2026-03-02", Reason: "x"}, "duration_days"},
		{"excuse with duration", CreateRequestRequest{Type: TypeExcuse, Date: "2026-03-02", DurationDays: &three, Reason: "x"}, "duration_days"},
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
