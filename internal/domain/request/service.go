package request

import (
	"context"
)

// RequestService manages the leave and excuse request lifecycle.
type RequestService interface {
	// Submit files a new request for the user and alerts the admins.
	Submit(ctx context.Context, userID string, req CreateRequestRequest) (RequestResponse, error)

	// Decide approves or rejects a pending request.
	Decide(ctx context.Context, adminID, requestID string, req DecideRequestRequest) (RequestResponse, error)

	ListMine(ctx context.Context, userID string) ([]RequestResponse, error)
	List(ctx context.Context, filter ListFilter) ([]RequestResponse, error)
}
