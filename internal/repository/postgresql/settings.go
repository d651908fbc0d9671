package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/pkg/database"
)

// The settings table holds a single row keyed by a constant id. The
// document is stored as JSONB so that adding a setting does not need a
// migration.
const settingsRowID = "system"

type settingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	var doc []byte
	var updatedAt time.Time
	err := q.QueryRow(ctx, `SELECT document, updated_at FROM system_settings WHERE id = $1`, settingsRowID).
		Scan(&doc, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Defaults(), nil
		}
		return settings.SystemSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var s settings.SystemSettings
	if err := json.Unmarshal(doc, &s); err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to decode settings document: %w", err)
	}
	s.UpdatedAt = updatedAt

	return s, nil
}

func (r *settingsRepository) Replace(ctx context.Context, s settings.SystemSettings) error {
	q := GetQuerier(ctx, r.db)

	s.UpdatedAt = time.Now()
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings document: %w", err)
	}

	query := `
		INSERT INTO system_settings (id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`

	if _, err := q.Exec(ctx, query, settingsRowID, doc, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}

	return nil
}
