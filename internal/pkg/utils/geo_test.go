package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance_ZeroForSamePoint(t *testing.T) {
	d := HaversineDistance(24.7136, 46.6753, 24.7136, 46.6753)
	if d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestHaversineDistance_KnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		// One degree of latitude is ~111.2 km everywhere.
		{"one degree latitude", 0, 0, 1, 0, 111195, 100},
		// Riyadh city-block scale: ~0.0027 deg latitude is ~300 m.
		{"300m north of Riyadh point", 24.7136, 46.6753, 24.716298, 46.6753, 300, 1},
		// Riyadh to Jeddah, ~847 km great-circle.
		{"riyadh to jeddah", 24.7136, 46.6753, 21.4858, 39.1925, 847000, 10000},
	}

	for _, c := range cases {
		got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: distance = %f, want %f (±%f)", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := HaversineDistance(24.7136, 46.6753, 21.4858, 39.1925)
	b := HaversineDistance(21.4858, 39.1925, 24.7136, 46.6753)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
