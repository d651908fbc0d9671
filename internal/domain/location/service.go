package location

import (
	"context"
)

// LocationService manages approved locations and resolves geofence matches.
type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]LocationResponse, error)

	// Resolve returns the first approved location containing the given
	// point, or nil when the point is outside every geofence.
	Resolve(ctx context.Context, lat, lon float64) (*ApprovedLocation, error)
}
