package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

// ChallengeView is the challenge plus the caller's standing in it.
type ChallengeView struct {
	Challenge challenge.Challenge `json:"challenge"`
	Vote      *challenge.Vote     `json:"vote,omitempty"`
	Outcome   challenge.Outcome   `json:"outcome"`
}

// ChallengeService derives the daily pick-the-winner challenge from the top
// game and handles vote submission and settlement.
type ChallengeService struct {
	games    *GameService
	votes    challenge.VoteRepository
	profiles challenge.ProfileRepository
	logger   *logging.Logger
	now      func() time.Time
}

func NewChallengeService(games *GameService, votes challenge.VoteRepository, profiles challenge.ProfileRepository, logger *logging.Logger) *ChallengeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChallengeService{
		games:    games,
		votes:    votes,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// ChallengeToday derives the sport's current challenge, attaches the caller's
// vote when present, and settles the outcome into profile stats exactly once
// per challenge.
func (s *ChallengeService) ChallengeToday(ctx context.Context, sportKey string) (ChallengeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.ChallengeToday")
	defer span.End()

	pick, err := s.games.PickToday(ctx, sportKey)
	if err != nil {
		return ChallengeView{}, err
	}

	strategy, _ := sport.Lookup(sportKey)
	c := challenge.FromGame(strategy.Key, pick, s.now())

	view := ChallengeView{Challenge: c, Outcome: challenge.OutcomePending}

	vote, found, err := s.votes.Get(ctx, c.ID)
	if err != nil {
		return ChallengeView{}, fmt.Errorf("load vote: %w", err)
	}
	if !found {
		return view, nil
	}
	view.Vote = &vote
	view.Outcome = challenge.Grade(c, vote)

	if view.Outcome != challenge.OutcomePending {
		if err := s.settle(ctx, c.ID, view.Outcome); err != nil {
			// Settlement failure must not hide the challenge itself.
			s.logger.ErrorContext(ctx, "challenge settlement failed",
				"challenge_id", c.ID, "error", err)
		}
	}
	return view, nil
}

// SubmitVote locks the caller's choice for the sport's current challenge.
// The first write wins; any later write, including one racing the first, is
// rejected without touching the stored vote.
func (s *ChallengeService) SubmitVote(ctx context.Context, sportKey, choice string) (challenge.Vote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.SubmitVote")
	defer span.End()

	side, ok := challenge.ValidSide(choice)
	if !ok {
		return challenge.Vote{}, fmt.Errorf("%w: choice must be %q or %q", ErrInvalidInput, challenge.SideAway, challenge.SideHome)
	}

	pick, err := s.games.PickToday(ctx, sportKey)
	if err != nil {
		return challenge.Vote{}, err
	}
	strategy, _ := sport.Lookup(sportKey)
	c := challenge.FromGame(strategy.Key, pick, s.now())

	if !c.Open() {
		return challenge.Vote{}, challenge.ErrVotingClosed
	}

	vote := challenge.Vote{
		ChallengeID: c.ID,
		Choice:      side,
		CreatedAt:   s.now(),
	}
	if err := s.votes.Put(ctx, vote); err != nil {
		return challenge.Vote{}, err
	}

	s.logger.InfoContext(ctx, "vote locked",
		"challenge_id", c.ID, "choice", string(side))
	return vote, nil
}

// settle folds one decided outcome into the profile counters at most once.
func (s *ChallengeService) settle(ctx context.Context, challengeID string, outcome challenge.Outcome) error {
	first, err := s.profiles.MarkSettled(ctx, challengeID)
	if err != nil {
		return fmt.Errorf("mark settled: %w", err)
	}
	if !first {
		return nil
	}

	stats, err := s.profiles.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load profile stats: %w", err)
	}
	if err := s.profiles.SaveStats(ctx, stats.Settle(outcome)); err != nil {
		return fmt.Errorf("save profile stats: %w", err)
	}
	return nil
}
