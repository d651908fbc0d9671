package location

import (
	"time"

	"github.com/qssun/attendance-backend-go/internal/pkg/validator"
)

type CreateLocationRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if !validator.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "coordinates", Message: "latitude must be between -90 and 90, longitude between -180 and 180"})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLocationRequest struct {
	Name         *string  `json:"name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
}

func (r UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}

	if r.Latitude != nil || r.Longitude != nil {
		if r.Latitude == nil || r.Longitude == nil {
			errs = append(errs, validator.ValidationError{Field: "coordinates", Message: "latitude and longitude must be updated together"})
		} else if !validator.IsValidCoordinate(*r.Latitude, *r.Longitude) {
			errs = append(errs, validator.ValidationError{Field: "coordinates", Message: "latitude must be between -90 and 90, longitude between -180 and 180"})
		}
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters int       `json:"radius_meters"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToResponse(loc ApprovedLocation) LocationResponse {
	return LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		CreatedAt:    loc.CreatedAt,
	}
}

func ToResponseList(locs []ApprovedLocation) []LocationResponse {
	out := make([]LocationResponse, 0, len(locs))
	for _, loc := range locs {
		out = append(out, ToResponse(loc))
	}
	return out
}
