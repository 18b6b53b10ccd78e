package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

const voteKeyPrefix = "prediction_"

// Votes older than the retention window are eligible for expiry; the
// challenge is long decided by then.
const voteTTL = 90 * 24 * time.Hour

// VoteRepository stores votes as JSON values under prediction_<challengeID>.
// First-write-wins comes from SET NX, so concurrent submissions race in redis
// rather than in process memory.
type VoteRepository struct {
	client *redis.Client
}

func NewVoteRepository(client *redis.Client) *VoteRepository {
	return &VoteRepository{client: client}
}

func (r *VoteRepository) Get(ctx context.Context, challengeID string) (challenge.Vote, bool, error) {
	raw, err := r.client.Get(ctx, voteKeyPrefix+challengeID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return challenge.Vote{}, false, nil
		}
		return challenge.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}

	var vote challenge.Vote
	if err := sonic.Unmarshal(raw, &vote); err != nil {
		return challenge.Vote{}, false, fmt.Errorf("decode vote: %w", err)
	}
	return vote, true, nil
}

func (r *VoteRepository) Put(ctx context.Context, vote challenge.Vote) error {
	payload, err := sonic.Marshal(vote)
	if err != nil {
		return fmt.Errorf("encode vote: %w", err)
	}

	stored, err := r.client.SetNX(ctx, voteKeyPrefix+vote.ChallengeID, payload, voteTTL).Result()
	if err != nil {
		return fmt.Errorf("store vote: %w", err)
	}
	if !stored {
		return challenge.ErrAlreadyVoted
	}
	return nil
}
