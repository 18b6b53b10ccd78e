package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

type settingsTableModel struct {
	FavoriteSport sql.NullString `db:"favorite_sport"`
	FavoriteTeam  sql.NullString `db:"favorite_team"`
	Notifications bool           `db:"notifications"`
}

func (r *SettingsRepository) Get(ctx context.Context) (challenge.Settings, error) {
	var row settingsTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT favorite_sport, favorite_team, notifications FROM profile_settings WHERE id = $1`,
		profileRowID)
	if err != nil {
		if isNotFound(err) {
			return challenge.Settings{}, nil
		}
		return challenge.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return challenge.Settings{
		FavoriteSport: strings.TrimSpace(row.FavoriteSport.String),
		FavoriteTeam:  strings.TrimSpace(row.FavoriteTeam.String),
		Notifications: row.Notifications,
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings challenge.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profile_settings (id, favorite_sport, favorite_team, notifications, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		     favorite_sport = EXCLUDED.favorite_sport,
		     favorite_team = EXCLUDED.favorite_team,
		     notifications = EXCLUDED.notifications,
		     updated_at = NOW()`,
		profileRowID,
		optionalString(settings.FavoriteSport),
		optionalString(settings.FavoriteTeam),
		settings.Notifications)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
