package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Riyadh office used across the geofence tests: 500m radius.
var riyadhOffice = ApprovedLocation{
	ID:           "loc-1",
	Name:         "Riyadh HQ",
	Latitude:     24.7136,
	Longitude:    46.6753,
	RadiusMeters: 500,
}

func TestMatch_InsideRadius(t *testing.T) {
	// ~300m north of the office center.
	got := Match(24.716298, 46.6753, []ApprovedLocation{riyadhOffice})
	require.NotNil(t, got)
	assert.Equal(t, "loc-1", got.ID)
}

func TestMatch_OutsideRadius(t *testing.T) {
	// ~600m north of the office center.
	got := Match(24.719000, 46.6753, []ApprovedLocation{riyadhOffice})
	assert.Nil(t, got)
}

func TestMatch_ExactCenter(t *testing.T) {
	got := Match(24.7136, 46.6753, []ApprovedLocation{riyadhOffice})
	require.NotNil(t, got)
	assert.Equal(t, "loc-1", got.ID)
}

func TestMatch_NoLocations(t *testing.T) {
	assert.Nil(t, Match(24.7136, 46.6753, nil))
}

func TestMatch_FirstMatchWinsOnOverlap(t *testing.T) {
	// Two concentric geofences: the result follows slice order, which is
	// the only tie-break the evaluator promises.
	wide := ApprovedLocation{ID: "wide", Latitude: 24.7136, Longitude: 46.6753, RadiusMeters: 2000}

	got := Match(24.7136, 46.6753, []ApprovedLocation{wide, riyadhOffice})
	require.NotNil(t, got)
	assert.Equal(t, "wide", got.ID)

	got = Match(24.7136, 46.6753, []ApprovedLocation{riyadhOffice, wide})
	require.NotNil(t, got)
	assert.Equal(t, "loc-1", got.ID)
}
