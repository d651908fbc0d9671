package location

import (
	"github.com/qssun/attendance-backend-go/internal/pkg/utils"
)

// Match returns the first approved location whose geofence contains the
// coordinate, or nil when the coordinate is outside every geofence.
// A coordinate exactly on the radius boundary counts as inside.
//
// When geofences overlap, the first location in the given ordering wins;
// callers that care should pass a deterministically ordered slice.
func Match(lat, lon float64, locations []ApprovedLocation) *ApprovedLocation {
	for i := range locations {
		loc := &locations[i]
		distance := utils.HaversineDistance(lat, lon, loc.Latitude, loc.Longitude)
		if distance <= float64(loc.RadiusMeters) {
			return loc
		}
	}
	return nil
}
