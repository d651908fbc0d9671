package location

import (
	"context"
)

// LocationRepository defines data access methods for approved locations.
type LocationRepository interface {
	Create(ctx context.Context, loc ApprovedLocation) (ApprovedLocation, error)
	GetByID(ctx context.Context, id string) (ApprovedLocation, error)
	Update(ctx context.Context, loc ApprovedLocation) error
	Delete(ctx context.Context, id string) error

	// List returns every approved location, newest first. The ordering is
	// the geofence evaluator's tie-break, so it must be deterministic.
	List(ctx context.Context) ([]ApprovedLocation, error)
}
