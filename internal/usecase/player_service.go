package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/player"
	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

const recentGameCount = 5

// currentSeasonLabel matches payloads that tag the active stats block by
// name instead of by year.
const currentSeasonLabel = "Regular Season"

// PlayerService builds a player profile with the sport's headline stat line
// and a short recent-game log.
type PlayerService struct {
	provider SportsProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewPlayerService(provider SportsProvider, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{provider: provider, logger: logger, now: time.Now}
}

func (s *PlayerService) GetPlayerDetail(ctx context.Context, sportKey, playerID string) (player.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerDetail")
	defer span.End()

	strategy, ok := sport.Lookup(sportKey)
	if !ok {
		return player.Detail{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sportKey)
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Detail{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	doc, err := s.provider.Athlete(ctx, strategy, playerID)
	if err != nil {
		return player.Detail{}, fmt.Errorf("fetch athlete: %w", err)
	}

	athlete := fieldpath.Map(doc, "athlete")
	if athlete == nil {
		athlete = doc
	}

	headshot, _ := fieldpath.First(athlete,
		[]any{"headshot", "href"},
		[]any{"headshot"},
	)
	teamName, _ := fieldpath.First(athlete,
		[]any{"team", "displayName"},
		[]any{"team", "name"},
		[]any{"collegeTeam", "displayName"},
	)

	detail := player.Detail{
		ID:          fieldpath.String(athlete, playerID, "id"),
		Name:        fieldpath.String(athlete, fieldpath.String(athlete, "", "fullName"), "displayName"),
		Jersey:      fieldpath.String(athlete, "", "jersey"),
		Position:    fieldpath.String(athlete, fieldpath.String(athlete, "", "position", "displayName"), "position", "abbreviation"),
		TeamName:    fieldpath.CoerceString(teamName, ""),
		HeadshotURL: fieldpath.CoerceString(headshot, ""),
		Age:         fieldpath.Int(athlete, 0, "age"),
		Experience:  fieldpath.Int(athlete, 0, "experience", "years"),
		Stats:       s.extractStats(doc, athlete, strategy),
		RecentGames: s.recentGames(doc),
	}
	return detail, nil
}

// extractStats pulls the strategy's stat fields out of the current season's
// category block. Missing fields are simply absent from the map rather than
// zero-filled.
func (s *PlayerService) extractStats(doc, athlete fieldpath.Doc, strategy sport.Strategy) map[string]string {
	categories := s.seasonCategories(doc, athlete)
	if categories == nil {
		categories = fieldpath.Slice(doc, "statistics", "splits", "categories")
	}
	if categories == nil {
		categories = fieldpath.Slice(athlete, "statistics", "splits", "categories")
	}
	if categories == nil {
		categories = fieldpath.Slice(doc, "athlete", "statsSummary", "statistics")
	}

	target := s.pickCategory(categories, strategy.StatCategory)
	if target == nil {
		return map[string]string{}
	}

	stats := make(map[string]string, len(strategy.StatFields))
	for _, raw := range fieldpath.Slice(target, "stats") {
		stat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := fieldpath.String(stat, "", "name")
		if !strategy.WantsStat(name) {
			continue
		}
		value := fieldpath.String(stat, "", "displayValue")
		if value == "" {
			value = fieldpath.String(stat, "", "value")
		}
		if value != "" {
			stats[name] = value
		}
	}
	return stats
}

// seasonCategories selects the current season's stat block when the payload
// carries one split per season. A block matches by season year first, then by
// the regular-season label; with neither present the first block stands in.
func (s *PlayerService) seasonCategories(doc, athlete fieldpath.Doc) []any {
	for _, root := range []fieldpath.Doc{doc, athlete} {
		seasons := fieldpath.Slice(root, "statistics", "seasons")
		if seasons == nil {
			continue
		}

		year := s.now().UTC().Year()
		var fallback fieldpath.Doc
		for _, raw := range seasons {
			season, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if fallback == nil {
				fallback = season
			}
			label, _ := fieldpath.First(season, []any{"displayName"}, []any{"label"})
			if fieldpath.Int(season, 0, "year") == year ||
				strings.EqualFold(strings.TrimSpace(fieldpath.CoerceString(label, "")), currentSeasonLabel) {
				return seasonBlockCategories(season)
			}
		}
		return seasonBlockCategories(fallback)
	}
	return nil
}

func seasonBlockCategories(season fieldpath.Doc) []any {
	if season == nil {
		return nil
	}
	if categories := fieldpath.Slice(season, "splits", "categories"); categories != nil {
		return categories
	}
	return fieldpath.Slice(season, "categories")
}

// pickCategory prefers the sport's named category and falls back to the first
// one when the payload only carries a single unnamed block.
func (s *PlayerService) pickCategory(categories []any, want string) fieldpath.Doc {
	var first fieldpath.Doc
	for _, raw := range categories {
		category, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if first == nil {
			first = category
		}
		name := fieldpath.String(category, "", "name")
		if strings.EqualFold(name, want) {
			return category
		}
	}
	return first
}

// recentGames reduces the game log to the five most recent entries. The log
// arrives newest-first already, so order is preserved.
func (s *PlayerService) recentGames(doc fieldpath.Doc) []player.RecentGame {
	events := fieldpath.Slice(doc, "gameLog", "events")
	if events == nil {
		events = fieldpath.Slice(doc, "athlete", "eventLog", "events", "items")
	}

	games := make([]player.RecentGame, 0, recentGameCount)
	for _, raw := range events {
		event, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		opponent, _ := fieldpath.First(event,
			[]any{"opponent", "abbreviation"},
			[]any{"opponent", "displayName"},
		)
		games = append(games, player.RecentGame{
			Date:     fieldpath.String(event, "", "gameDate"),
			Opponent: fieldpath.CoerceString(opponent, ""),
			Result:   fieldpath.String(event, "", "gameResult"),
			Stats:    event["stats"],
		})
		if len(games) == recentGameCount {
			break
		}
	}
	return games
}
