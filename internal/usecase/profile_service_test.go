package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedayhq/gameday/internal/infrastructure/repository/memory"
)

func TestSaveSettingsRoundTrip(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), memory.NewSettingsRepository())

	saved, err := svc.SaveSettings(context.Background(), SettingsInput{
		FavoriteSport: "nba",
		FavoriteTeam:  "LAL",
		Notifications: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "nba", saved.FavoriteSport)

	got, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveSettingsRejectsUnknownSport(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), memory.NewSettingsRepository())

	_, err := svc.SaveSettings(context.Background(), SettingsInput{FavoriteSport: "cricket"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsDefaultsToZero(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), memory.NewSettingsRepository())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Points)
	assert.Zero(t, stats.Settled)
}
