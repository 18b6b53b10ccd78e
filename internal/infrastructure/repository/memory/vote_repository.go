package memory

import (
	"context"
	"sync"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

// voteKeyPrefix namespaces vote entries so the store format stays compatible
// with the persistent backends.
const voteKeyPrefix = "prediction_"

type VoteRepository struct {
	mu    sync.RWMutex
	votes map[string]challenge.Vote
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{votes: make(map[string]challenge.Vote)}
}

func (r *VoteRepository) Get(_ context.Context, challengeID string) (challenge.Vote, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vote, ok := r.votes[voteKeyPrefix+challengeID]
	return vote, ok, nil
}

// Put stores the vote unless one already exists for the challenge. The check
// and write happen under one lock, so concurrent submissions admit exactly
// one winner.
func (r *VoteRepository) Put(_ context.Context, vote challenge.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKeyPrefix + vote.ChallengeID
	if _, exists := r.votes[key]; exists {
		return challenge.ErrAlreadyVoted
	}
	r.votes[key] = vote
	return nil
}
