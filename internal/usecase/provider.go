package usecase

import (
	"context"

	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
)

// SportsProvider is the upstream sports-data dependency. Every method returns
// the raw decoded payload: shapes drift per sport and team, so extraction is
// the caller's problem and always goes through fieldpath.
type SportsProvider interface {
	Scoreboard(ctx context.Context, s sport.Strategy) (fieldpath.Doc, error)
	TeamProfile(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error)
	TeamRoster(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error)
	TeamSchedule(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error)
	TeamStatistics(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error)
	Athlete(ctx context.Context, s sport.Strategy, playerID string) (fieldpath.Doc, error)
}
