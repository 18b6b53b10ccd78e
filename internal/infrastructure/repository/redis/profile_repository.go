package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

const (
	profileStatsKey    = "profile_stats"
	settledSetKey      = "settled_challenges"
	profileSettingsKey = "profile_settings"
)

type ProfileRepository struct {
	client *redis.Client
}

func NewProfileRepository(client *redis.Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) Stats(ctx context.Context) (challenge.ProfileStats, error) {
	raw, err := r.client.Get(ctx, profileStatsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return challenge.ProfileStats{}, nil
		}
		return challenge.ProfileStats{}, fmt.Errorf("get profile stats: %w", err)
	}

	var stats challenge.ProfileStats
	if err := sonic.Unmarshal(raw, &stats); err != nil {
		return challenge.ProfileStats{}, fmt.Errorf("decode profile stats: %w", err)
	}
	return stats, nil
}

func (r *ProfileRepository) SaveStats(ctx context.Context, stats challenge.ProfileStats) error {
	payload, err := sonic.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode profile stats: %w", err)
	}
	if err := r.client.Set(ctx, profileStatsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save profile stats: %w", err)
	}
	return nil
}

// MarkSettled adds the challenge to the settlement set; SADD reports how many
// members were actually new.
func (r *ProfileRepository) MarkSettled(ctx context.Context, challengeID string) (bool, error) {
	added, err := r.client.SAdd(ctx, settledSetKey, challengeID).Result()
	if err != nil {
		return false, fmt.Errorf("mark challenge settled: %w", err)
	}
	return added > 0, nil
}

type SettingsRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) Get(ctx context.Context) (challenge.Settings, error) {
	raw, err := r.client.Get(ctx, profileSettingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return challenge.Settings{}, nil
		}
		return challenge.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	var settings challenge.Settings
	if err := sonic.Unmarshal(raw, &settings); err != nil {
		// A malformed stored value reads back as defaults rather than failing
		// the whole profile page.
		return challenge.Settings{}, nil
	}
	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings challenge.Settings) error {
	payload, err := sonic.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.client.Set(ctx, profileSettingsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
