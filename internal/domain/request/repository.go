package request

import (
	"context"
)

// RequestRepository defines data access methods for leave and excuse
// requests.
type RequestRepository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, decidedBy string) error
	List(ctx context.Context, filter ListFilter) ([]Request, error)

	// ListForUserInRange returns the user's requests whose coverage may
	// intersect [fromDay, toDay]. Used by the report aggregator.
	ListForUserInRange(ctx context.Context, userID, fromDay, toDay string) ([]Request, error)
}
