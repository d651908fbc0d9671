package location

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
)

type service struct {
	repo location.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(repo location.LocationRepository) location.LocationService {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc := location.ApprovedLocation{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		CreatedAt:    time.Now(),
	}

	created, err := s.repo.Create(ctx, loc)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return location.ToResponse(created), nil
}

func (s *service) Update(ctx context.Context, id string, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, err
	}

	return location.ToResponse(loc), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]location.LocationResponse, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return location.ToResponseList(locs), nil
}

func (s *service) Resolve(ctx context.Context, lat, lon float64) (*location.ApprovedLocation, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return location.Match(lat, lon, locs), nil
}
