package request

import (
	"time"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	Type         RequestType `json:"type"`
	Date         string      `json:"date"`
	DurationDays *int        `json:"duration_days,omitempty"`
	Reason       string      `json:"reason"`
}

func (r CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != TypeLeave && r.Type != TypeExcuse {
		errs = append(errs, validator.ValidationError{Field: "type", Message: ErrInvalidType.Error()})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if r.Type == TypeLeave {
		if r.DurationDays == nil || *r.DurationDays < 1 {
			errs = append(errs, validator.ValidationError{Field: "duration_days", Message: "leave requests need a duration of at least one day"})
		}
	} else if r.DurationDays != nil {
		errs = append(errs, validator.ValidationError{Field: "duration_days", Message: "excuse requests do not take a duration"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequestRequest struct {
	Approve bool `json:"approve"`
}

type RequestResponse struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	UserName     string        `json:"user_name,omitempty"`
	Type         RequestType   `json:"type"`
	Date         string        `json:"date"`
	DurationDays *int          `json:"duration_days,omitempty"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	DecidedBy    *string       `json:"decided_by,omitempty"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ListFilter narrows request listings. Zero values mean no filter.
type ListFilter struct {
	UserID string
	Type   RequestType
	Status RequestStatus
}

func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Type:         r.Type,
		Date:         r.Date,
		DurationDays: r.DurationDays,
		Reason:       r.Reason,
		Status:       r.Status,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func ToResponseList(requests []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	return out
}
