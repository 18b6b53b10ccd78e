package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/challenge"
)

func TestVoteRepositoryFirstWriteWins(t *testing.T) {
	repo := NewVoteRepository()
	ctx := context.Background()

	first := challenge.Vote{ChallengeID: "nba-401585601", Choice: challenge.SideHome, CreatedAt: time.Now()}
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("first Put: %v", err)
	}

	second := challenge.Vote{ChallengeID: "nba-401585601", Choice: challenge.SideAway}
	if err := repo.Put(ctx, second); err != challenge.ErrAlreadyVoted {
		t.Fatalf("second Put error = %v, want ErrAlreadyVoted", err)
	}

	got, found, err := repo.Get(ctx, "nba-401585601")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got.Choice != challenge.SideHome {
		t.Fatalf("stored choice = %q, want original %q", got.Choice, challenge.SideHome)
	}
}

func TestVoteRepositoryConcurrentPutAdmitsOne(t *testing.T) {
	repo := NewVoteRepository()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			side := challenge.SideHome
			if i%2 == 0 {
				side = challenge.SideAway
			}
			errs[i] = repo.Put(ctx, challenge.Vote{ChallengeID: "nfl-401", Choice: side})
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else if err != challenge.ErrAlreadyVoted {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted %d writes, want exactly 1", accepted)
	}
}

func TestVoteRepositoryMissingChallenge(t *testing.T) {
	repo := NewVoteRepository()
	if _, found, err := repo.Get(context.Background(), "mlb-000"); err != nil || found {
		t.Fatalf("Get on empty store: found=%v err=%v", found, err)
	}
}

func TestProfileRepositoryMarkSettledIdempotent(t *testing.T) {
	repo := NewProfileRepository()
	ctx := context.Background()

	first, err := repo.MarkSettled(ctx, "nba-401585601")
	if err != nil || !first {
		t.Fatalf("first MarkSettled: first=%v err=%v", first, err)
	}
	again, err := repo.MarkSettled(ctx, "nba-401585601")
	if err != nil || again {
		t.Fatalf("repeat MarkSettled: first=%v err=%v", again, err)
	}
}

func TestProfileRepositoryStatsRoundTrip(t *testing.T) {
	repo := NewProfileRepository()
	ctx := context.Background()

	stats := challenge.ProfileStats{Points: 30, Streak: 3, Settled: 4, Correct: 3, Accuracy: 0.75}
	if err := repo.SaveStats(ctx, stats); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}
	got, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got != stats {
		t.Fatalf("Stats = %+v, want %+v", got, stats)
	}
}

func TestSettingsRepositoryDefaultsToZero(t *testing.T) {
	repo := NewSettingsRepository()
	got, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != (challenge.Settings{}) {
		t.Fatalf("empty store settings = %+v, want zero value", got)
	}
}
