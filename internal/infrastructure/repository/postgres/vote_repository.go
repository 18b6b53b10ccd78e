package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

type voteTableModel struct {
	ChallengeID string    `db:"challenge_id"`
	Choice      string    `db:"choice"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *VoteRepository) Get(ctx context.Context, challengeID string) (challenge.Vote, bool, error) {
	var row voteTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT challenge_id, choice, created_at FROM picks WHERE challenge_id = $1`,
		challengeID)
	if err != nil {
		if isNotFound(err) {
			return challenge.Vote{}, false, nil
		}
		return challenge.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}

	return challenge.Vote{
		ChallengeID: row.ChallengeID,
		Choice:      challenge.Side(row.Choice),
		CreatedAt:   row.CreatedAt,
	}, true, nil
}

// Put relies on the primary key for the first-write-wins guarantee: the
// conflict clause swallows the duplicate insert and the affected-row count
// tells losers apart from the winner.
func (r *VoteRepository) Put(ctx context.Context, vote challenge.Vote) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO picks (challenge_id, choice, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (challenge_id) DO NOTHING`,
		vote.ChallengeID, string(vote.Choice), vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return challenge.ErrAlreadyVoted
		}
		return fmt.Errorf("insert vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert vote rows affected: %w", err)
	}
	if affected == 0 {
		return challenge.ErrAlreadyVoted
	}
	return nil
}
