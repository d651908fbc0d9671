package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/notification"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
)

type service struct {
	repo     request.RequestRepository
	users    user.UserRepository
	notifier notification.Service
	settings settings.SettingsService

	now func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService(
	repo request.RequestRepository,
	users user.UserRepository,
	notifier notification.Service,
	settingsSvc settings.SettingsService,
) request.RequestService {
	return &service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		settings: settingsSvc,
		now:      time.Now,
	}
}

func (s *service) Submit(ctx context.Context, userID string, req request.CreateRequestRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	// Excuses justify what already happened, so the date cannot be in
	// the future.
	if req.Type == request.TypeExcuse {
		today := s.now().In(s.settings.Snapshot().Location()).Format("2006-01-02")
		if req.Date > today {
			return request.RequestResponse{}, request.ErrFutureExcuse
		}
	}

	r := request.Request{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         req.Type,
		Date:         req.Date,
		DurationDays: req.DurationDays,
		Reason:       req.Reason,
		Status:       request.StatusPending,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return request.RequestResponse{}, err
	}

	s.notifyAdmins(ctx, userID, r)

	return request.ToResponse(r), nil
}

func (s *service) Decide(ctx context.Context, adminID, requestID string, req request.DecideRequestRequest) (request.RequestResponse, error) {
	r, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	if r.Status != request.StatusPending {
		return request.RequestResponse{}, request.ErrAlreadyDecided
	}

	status := request.StatusRejected
	if req.Approve {
		status = request.StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, requestID, status, adminID); err != nil {
		return request.RequestResponse{}, err
	}

	now := s.now()
	r.Status = status
	r.DecidedBy = &adminID
	r.DecidedAt = &now

	verdict := "rejected"
	if req.Approve {
		verdict = "approved"
	}
	_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "Request update",
		Message: fmt.Sprintf("Your %s request for %s was %s.", r.Type, r.Date, verdict),
		Type:    notification.TypeRequestDecided,
		Targets: []string{r.UserID},
	})

	return request.ToResponse(r), nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]request.RequestResponse, error) {
	requests, err := s.repo.List(ctx, request.ListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	return request.ToResponseList(requests), nil
}

func (s *service) List(ctx context.Context, filter request.ListFilter) ([]request.RequestResponse, error) {
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := request.ToResponseList(requests)
	for i := range responses {
		if u, err := s.users.GetByID(ctx, responses[i].UserID); err == nil {
			responses[i].UserName = u.Name
		}
	}
	return responses, nil
}

func (s *service) notifyAdmins(ctx context.Context, userID string, r request.Request) {
	adminIDs, err := s.users.ListIDsByRole(ctx, user.RoleAdmin)
	if err != nil || len(adminIDs) == 0 {
		return
	}

	name := userID
	if u, err := s.users.GetByID(ctx, userID); err == nil {
		name = u.Name
	}

	kind := "leave"
	if r.Type == request.TypeExcuse {
		kind = "excuse"
	}

	_ = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		Title:   "New request",
		Message: fmt.Sprintf("You have a new %s request from %s.", kind, name),
		Type:    notification.TypeRequestSubmitted,
		Targets: adminIDs,
	})
}
