package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SettingsInput is the caller-supplied preferences payload.
type SettingsInput struct {
	FavoriteSport string `json:"favoriteSport" validate:"omitempty,oneof=nba nfl mlb"`
	FavoriteTeam  string `json:"favoriteTeam" validate:"omitempty,max=64"`
	Notifications bool   `json:"notifications"`
}

// ProfileService exposes the pick counters and user preferences.
type ProfileService struct {
	profiles challenge.ProfileRepository
	settings challenge.SettingsRepository
}

func NewProfileService(profiles challenge.ProfileRepository, settings challenge.SettingsRepository) *ProfileService {
	return &ProfileService{profiles: profiles, settings: settings}
}

func (s *ProfileService) Stats(ctx context.Context) (challenge.ProfileStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Stats")
	defer span.End()

	stats, err := s.profiles.Stats(ctx)
	if err != nil {
		return challenge.ProfileStats{}, fmt.Errorf("load profile stats: %w", err)
	}
	return stats, nil
}

func (s *ProfileService) Settings(ctx context.Context) (challenge.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Settings")
	defer span.End()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return challenge.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *ProfileService) SaveSettings(ctx context.Context, input SettingsInput) (challenge.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.SaveSettings")
	defer span.End()

	if err := validate.Struct(input); err != nil {
		return challenge.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	settings := challenge.Settings{
		FavoriteSport: input.FavoriteSport,
		FavoriteTeam:  input.FavoriteTeam,
		Notifications: input.Notifications,
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return challenge.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
