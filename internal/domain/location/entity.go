package location

import (
	"time"
)

// ApprovedLocation is an admin-registered work site. A check-in is only
// accepted from inside one of these geofences.
type ApprovedLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
}
