package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLateness(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name        string
		checkIn     time.Time
		latest      string
		isLate      bool
		lateMinutes int
	}{
		{
			name:    "before threshold",
			checkIn: time.Date(2026, 3, 2, 8, 0, 0, 0, loc),
			latest:  "08:15",
		},
		{
			name:    "exactly at threshold is on time",
			checkIn: time.Date(2026, 3, 2, 8, 15, 0, 0, loc),
			latest:  "08:15",
		},
		{
			name:        "five minutes late",
			checkIn:     time.Date(2026, 3, 2, 8, 20, 0, 0, loc),
			latest:      "08:15",
			isLate:      true,
			lateMinutes: 5,
		},
		{
			name:        "seconds round to nearest minute",
			checkIn:     time.Date(2026, 3, 2, 8, 20, 40, 0, loc),
			latest:      "08:15",
			isLate:      true,
			lateMinutes: 6,
		},
		{
			name:        "one second late rounds to zero minutes",
			checkIn:     time.Date(2026, 3, 2, 8, 15, 1, 0, loc),
			latest:      "08:15",
			isLate:      true,
			lateMinutes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateLateness(tt.checkIn, tt.latest, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.isLate, got.IsLate)
			assert.Equal(t, tt.lateMinutes, got.LateMinutes)
		})
	}
}

func TestEvaluateLatenessTimezone(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)

	// 05:20 UTC is 08:20 in Riyadh, five minutes past an 08:15 threshold.
	checkIn := time.Date(2026, 3, 2, 5, 20, 0, 0, time.UTC)

	got, err := EvaluateLateness(checkIn, "08:15", riyadh)
	require.NoError(t, err)
	assert.True(t, got.IsLate)
	assert.Equal(t, 5, got.LateMinutes)
}

func TestEvaluateLatenessInvalidClock(t *testing.T) {
	_, err := EvaluateLateness(time.Now(), "25:99", time.UTC)
	assert.Error(t, err)
}

func TestRequiresMandatoryExcuse(t *testing.T) {
	tests := []struct {
		name       string
		lateSoFar  int
		allowed    int
		wantExcuse bool
	}{
		{"first late with allowance 3", 0, 3, false},
		{"second late with allowance 3", 1, 3, false},
		{"third late reaches allowance 3", 2, 3, true},
		{"beyond allowance", 5, 3, true},
		{"allowance 1 triggers immediately", 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExcuse, RequiresMandatoryExcuse(tt.lateSoFar, tt.allowed))
		})
	}
}
