package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

// The profile is single-user, so stats live in one fixed row.
const profileRowID = 1

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileStatsTableModel struct {
	Points   int     `db:"points"`
	Streak   int     `db:"streak"`
	Settled  int     `db:"settled"`
	Correct  int     `db:"correct"`
	Accuracy float64 `db:"accuracy"`
}

func (r *ProfileRepository) Stats(ctx context.Context) (challenge.ProfileStats, error) {
	var row profileStatsTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT points, streak, settled, correct, accuracy FROM profile_stats WHERE id = $1`,
		profileRowID)
	if err != nil {
		if isNotFound(err) {
			return challenge.ProfileStats{}, nil
		}
		return challenge.ProfileStats{}, fmt.Errorf("get profile stats: %w", err)
	}

	return challenge.ProfileStats{
		Points:   row.Points,
		Streak:   row.Streak,
		Settled:  row.Settled,
		Correct:  row.Correct,
		Accuracy: row.Accuracy,
	}, nil
}

func (r *ProfileRepository) SaveStats(ctx context.Context, stats challenge.ProfileStats) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profile_stats (id, points, streak, settled, correct, accuracy, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		     points = EXCLUDED.points,
		     streak = EXCLUDED.streak,
		     settled = EXCLUDED.settled,
		     correct = EXCLUDED.correct,
		     accuracy = EXCLUDED.accuracy,
		     updated_at = NOW()`,
		profileRowID, stats.Points, stats.Streak, stats.Settled, stats.Correct, stats.Accuracy)
	if err != nil {
		return fmt.Errorf("save profile stats: %w", err)
	}
	return nil
}

// MarkSettled inserts the challenge into the settlement ledger; a duplicate
// insert means another reader already settled it.
func (r *ProfileRepository) MarkSettled(ctx context.Context, challengeID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO settled_challenges (challenge_id, settled_at)
		 VALUES ($1, NOW())
		 ON CONFLICT (challenge_id) DO NOTHING`,
		challengeID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("mark challenge settled: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark settled rows affected: %w", err)
	}
	return affected > 0, nil
}
