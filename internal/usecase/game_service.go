package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gamedayhq/gameday/internal/domain/game"
	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

// GameService turns raw scoreboard events into normalized, ranked games.
type GameService struct {
	provider SportsProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewGameService(provider SportsProvider, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// GamesToday fetches and transforms today's slate, best watch first.
// Malformed upstream events are dropped silently, not surfaced.
func (s *GameService) GamesToday(ctx context.Context, sportKey string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GamesToday")
	defer span.End()

	strategy, ok := sport.Lookup(sportKey)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sportKey)
	}

	doc, err := s.provider.Scoreboard(ctx, strategy)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	rawEvents, ok := doc["events"].([]any)
	if !ok {
		rawEvents = nil
	}

	games := make([]game.Game, 0, len(rawEvents))
	dropped := 0
	for _, raw := range rawEvents {
		event, ok := raw.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		g, ok := game.Transform(event)
		if !ok {
			dropped++
			continue
		}
		games = append(games, g)
	}
	if dropped > 0 {
		s.logger.DebugContext(ctx, "dropped malformed scoreboard events",
			"sport", strategy.Key, "dropped", dropped)
	}

	game.SortByScore(games)
	return games, nil
}

// PickToday returns the single highest-scored game of the day.
func (s *GameService) PickToday(ctx context.Context, sportKey string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.PickToday")
	defer span.End()

	games, err := s.GamesToday(ctx, sportKey)
	if err != nil {
		return game.Game{}, err
	}
	if len(games) == 0 {
		return game.Game{}, fmt.Errorf("%w: no games scheduled today", ErrNotFound)
	}
	return games[0], nil
}

// WarmResult is one sport's outcome from a warm pass.
type WarmResult struct {
	Sport      sport.Key `json:"sport"`
	Games      int       `json:"games"`
	TopScore   int       `json:"topScore,omitempty"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
}

// WarmAll transforms every configured sport's scoreboard on a small worker
// pool. Used at startup and by the internal warm endpoint; per-sport failures
// are reported per row, never propagated.
func (s *GameService) WarmAll(ctx context.Context) ([]WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.WarmAll")
	defer span.End()

	sports := sport.All()
	results := make([]WarmResult, len(sports))

	pool, err := ants.NewPool(len(sports))
	if err != nil {
		return nil, fmt.Errorf("create warm pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, strategy := range sports {
		i, strategy := i, strategy
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()

			start := s.now()
			row := WarmResult{Sport: strategy.Key}
			games, err := s.GamesToday(ctx, string(strategy.Key))
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Games = len(games)
				if len(games) > 0 {
					row.TopScore = games[0].Score
				}
			}
			row.DurationMs = s.now().Sub(start).Milliseconds()
			results[i] = row
		})
		if submitErr != nil {
			workers.Done()
			results[i] = WarmResult{Sport: strategy.Key, Error: submitErr.Error()}
		}
	}
	workers.Wait()

	return results, nil
}
