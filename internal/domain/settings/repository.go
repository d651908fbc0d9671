package settings

import (
	"context"
)

// SettingsRepository stores the single settings row.
type SettingsRepository interface {
	// Get returns the stored settings, or Defaults() when nothing has
	// been saved yet.
	Get(ctx context.Context) (SystemSettings, error)

	// Replace overwrites the stored settings wholesale.
	Replace(ctx context.Context, s SystemSettings) error
}
