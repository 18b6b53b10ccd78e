package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
	"github.com/gamedayhq/gameday/internal/infrastructure/repository/memory"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

func finishedEvent(id string, awayScore, homeScore float64) map[string]any {
	event := scoreboardEvent(id, "GSW", "7-1", "LAL", "6-2", "ESPN")
	event["status"] = map[string]any{"type": map[string]any{"name": "STATUS_FINAL"}}
	competition := event["competitions"].([]any)[0].(map[string]any)
	competitors := competition["competitors"].([]any)
	competitors[0].(map[string]any)["score"] = homeScore
	competitors[1].(map[string]any)["score"] = awayScore
	return event
}

func newChallengeFixture(scoreboard fieldpath.Doc) (*ChallengeService, *memory.ProfileRepository) {
	games := NewGameService(&fakeProvider{scoreboard: scoreboard}, logging.NewNop())
	profiles := memory.NewProfileRepository()
	svc := NewChallengeService(games, memory.NewVoteRepository(), profiles, logging.NewNop())
	return svc, profiles
}

func TestSubmitVoteBeforeStart(t *testing.T) {
	svc, _ := newChallengeFixture(fieldpath.Doc{
		"events": []any{scoreboardEvent("401585601", "GSW", "7-1", "LAL", "6-2", "ESPN")},
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }

	vote, err := svc.SubmitVote(context.Background(), "nba", "home")
	require.NoError(t, err)
	assert.Equal(t, "nba-401585601", vote.ChallengeID)
	assert.Equal(t, challenge.SideHome, vote.Choice)

	view, err := svc.ChallengeToday(context.Background(), "nba")
	require.NoError(t, err)
	require.NotNil(t, view.Vote)
	assert.Equal(t, challenge.SideHome, view.Vote.Choice)
	assert.Equal(t, challenge.OutcomePending, view.Outcome)
	assert.True(t, view.Challenge.Open())
}

func TestSubmitVoteTwiceRejected(t *testing.T) {
	svc, _ := newChallengeFixture(fieldpath.Doc{
		"events": []any{scoreboardEvent("401585601", "GSW", "7-1", "LAL", "6-2", "ESPN")},
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }

	_, err := svc.SubmitVote(context.Background(), "nba", "home")
	require.NoError(t, err)

	_, err = svc.SubmitVote(context.Background(), "nba", "away")
	require.ErrorIs(t, err, challenge.ErrAlreadyVoted)

	// The original vote is untouched.
	view, err := svc.ChallengeToday(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, challenge.SideHome, view.Vote.Choice)
}

func TestSubmitVoteAfterStartRejected(t *testing.T) {
	svc, _ := newChallengeFixture(fieldpath.Doc{
		"events": []any{scoreboardEvent("401585601", "GSW", "7-1", "LAL", "6-2", "ESPN")},
	})
	// Tip-off is 23:00Z; a minute later voting is closed.
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 23, 1, 0, 0, time.UTC) }

	_, err := svc.SubmitVote(context.Background(), "nba", "home")
	require.ErrorIs(t, err, challenge.ErrVotingClosed)
}

func TestSubmitVoteInvalidChoice(t *testing.T) {
	svc, _ := newChallengeFixture(fieldpath.Doc{"events": []any{}})

	_, err := svc.SubmitVote(context.Background(), "nba", "draw")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestChallengeTodaySettlesOnce(t *testing.T) {
	svc, profiles := newChallengeFixture(fieldpath.Doc{
		"events": []any{scoreboardEvent("401585601", "GSW", "7-1", "LAL", "6-2", "ESPN")},
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }

	_, err := svc.SubmitVote(context.Background(), "nba", "home")
	require.NoError(t, err)

	// Same challenge, now finished with the home side winning.
	finished := NewGameService(&fakeProvider{scoreboard: fieldpath.Doc{
		"events": []any{finishedEvent("401585601", 101, 112)},
	}}, logging.NewNop())
	svc.games = finished
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC) }

	view, err := svc.ChallengeToday(context.Background(), "nba")
	require.NoError(t, err)
	assert.True(t, view.Challenge.GameFinished)
	assert.Equal(t, challenge.SideHome, view.Challenge.Winner)
	assert.Equal(t, challenge.OutcomeCorrect, view.Outcome)

	stats, err := profiles.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Points)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.Settled)

	// A second read must not double-count.
	_, err = svc.ChallengeToday(context.Background(), "nba")
	require.NoError(t, err)
	stats, err = profiles.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Points)
	assert.Equal(t, 1, stats.Settled)
}

func TestChallengeTodayTieHasNoWinner(t *testing.T) {
	svc, profiles := newChallengeFixture(fieldpath.Doc{
		"events": []any{finishedEvent("77", 99, 99)},
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC) }

	view, err := svc.ChallengeToday(context.Background(), "nba")
	require.NoError(t, err)
	assert.True(t, view.Challenge.GameFinished)
	assert.Empty(t, view.Challenge.Winner)
	assert.Equal(t, challenge.OutcomePending, view.Outcome)

	stats, err := profiles.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Settled)
}

func TestChallengeTodayNoGames(t *testing.T) {
	svc, _ := newChallengeFixture(fieldpath.Doc{"events": []any{}})

	_, err := svc.ChallengeToday(context.Background(), "nba")
	require.ErrorIs(t, err, ErrNotFound)
}
