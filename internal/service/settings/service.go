package settings

import (
	"context"
	"sync"

	"github.com/qssun/attendance-backend-go/internal/domain/settings"
)

type service struct {
	repo settings.SettingsRepository

	mu       sync.RWMutex
	snapshot settings.SystemSettings
}

// NewSettingsService creates a settings service. The stored settings
// are loaded once at startup and kept as an in-memory snapshot.
func NewSettingsService(ctx context.Context, repo settings.SettingsRepository) (settings.SettingsService, error) {
	current, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &service{repo: repo, snapshot: current}, nil
}

func (s *service) Get(ctx context.Context) (settings.SystemSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.SystemSettings{}, err
	}

	s.mu.Lock()
	s.snapshot = current
	s.mu.Unlock()

	return current, nil
}

func (s *service) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SystemSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.SystemSettings{}, err
	}

	next := req.ToEntity()
	if err := s.repo.Replace(ctx, next); err != nil {
		return settings.SystemSettings{}, err
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	return next, nil
}

func (s *service) Snapshot() settings.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
