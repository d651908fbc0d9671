package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc location.ApprovedLocation) (location.ApprovedLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approved_locations (id, name, latitude, longitude, radius_meters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		loc.ID,
		loc.Name,
		loc.Latitude,
		loc.Longitude,
		loc.RadiusMeters,
		loc.CreatedAt,
	)
	if err != nil {
		return location.ApprovedLocation{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (location.ApprovedLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at
		FROM approved_locations
		WHERE id = $1
	`

	var loc location.ApprovedLocation
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID,
		&loc.Name,
		&loc.Latitude,
		&loc.Longitude,
		&loc.RadiusMeters,
		&loc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.ApprovedLocation{}, location.ErrLocationNotFound
		}
		return location.ApprovedLocation{}, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (r *locationRepository) Update(ctx context.Context, loc location.ApprovedLocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approved_locations
		SET name = $2, latitude = $3, longitude = $4, radius_meters = $5
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM approved_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

func (r *locationRepository) List(ctx context.Context) ([]location.ApprovedLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at
		FROM approved_locations
		ORDER BY created_at DESC, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.ApprovedLocation
	for rows.Next() {
		var loc location.ApprovedLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}
