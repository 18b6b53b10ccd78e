package memory

import (
	"context"
	"sync"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

type ProfileRepository struct {
	mu      sync.RWMutex
	stats   challenge.ProfileStats
	settled map[string]struct{}
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{settled: make(map[string]struct{})}
}

func (r *ProfileRepository) Stats(_ context.Context) (challenge.ProfileStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats, nil
}

func (r *ProfileRepository) SaveStats(_ context.Context, stats challenge.ProfileStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = stats
	return nil
}

// MarkSettled records the challenge as folded in and reports whether this
// call was the first to do so.
func (r *ProfileRepository) MarkSettled(_ context.Context, challengeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, done := r.settled[challengeID]; done {
		return false, nil
	}
	r.settled[challengeID] = struct{}{}
	return true, nil
}
