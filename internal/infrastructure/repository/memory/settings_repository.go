package memory

import (
	"context"
	"sync"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

type SettingsRepository struct {
	mu       sync.RWMutex
	settings challenge.Settings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) Get(_ context.Context) (challenge.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *SettingsRepository) Save(_ context.Context, settings challenge.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}
