package settings

import (
	"context"
)

// SettingsService exposes the system configuration. Snapshot is safe
// to call from hot paths; it never touches the database.
type SettingsService interface {
	Get(ctx context.Context) (SystemSettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SystemSettings, error)

	// Snapshot returns the last loaded settings from memory.
	Snapshot() SystemSettings
}
