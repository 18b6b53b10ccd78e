package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/gamedayhq/gameday/internal/domain/roster"
	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/domain/team"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

const lastFiveCount = 5

// TeamService aggregates one team's profile, roster, schedule and statistics
// into a single UI-ready detail. Only the profile fetch is fatal; every other
// section degrades to its empty default when its fetch or shape fails.
type TeamService struct {
	provider SportsProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamService(provider SportsProvider, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// GetTeamDetail fans out the three primary requests concurrently, joins them
// all, then issues the statistics request sequentially.
func (s *TeamService) GetTeamDetail(ctx context.Context, sportKey, teamID string) (team.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamDetail")
	defer span.End()

	strategy, ok := sport.Lookup(sportKey)
	if !ok {
		return team.Detail{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sportKey)
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Detail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	var (
		profileDoc, rosterDoc, scheduleDoc fieldpath.Doc
		profileErr, rosterErr, scheduleErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() { profileDoc, profileErr = s.provider.TeamProfile(ctx, strategy, teamID) })
	wg.Go(func() { rosterDoc, rosterErr = s.provider.TeamRoster(ctx, strategy, teamID) })
	wg.Go(func() { scheduleDoc, scheduleErr = s.provider.TeamSchedule(ctx, strategy, teamID) })
	wg.Wait()

	if profileErr != nil {
		return team.Detail{}, fmt.Errorf("fetch team profile: %w", profileErr)
	}
	if rosterErr != nil {
		s.logger.WarnContext(ctx, "team roster fetch failed, continuing without roster",
			"sport", strategy.Key, "team_id", teamID, "error", rosterErr)
	}
	if scheduleErr != nil {
		s.logger.WarnContext(ctx, "team schedule fetch failed, continuing without schedule",
			"sport", strategy.Key, "team_id", teamID, "error", scheduleErr)
	}

	detail := s.buildIdentity(profileDoc)

	entries := normalizeRosterDoc(rosterDoc)
	roster.SortBySport(entries, strategy)
	detail.Roster = entries
	detail.Injuries = team.InjuryReport(entries)

	now := s.now()
	scheduleEvents := scheduleEventsOf(scheduleDoc)
	detail.LastFive = s.lastFiveGames(scheduleEvents, detail, teamID, now)
	detail.GameStatus, detail.LiveScore = s.nextGameState(scheduleEvents, detail, teamID, now)

	statsDoc, statsErr := s.provider.TeamStatistics(ctx, strategy, teamID)
	if statsErr != nil {
		s.logger.WarnContext(ctx, "team statistics fetch failed, falling back to computed averages",
			"sport", strategy.Key, "team_id", teamID, "error", statsErr)
	}
	detail.Rankings = s.buildRankings(statsDoc, detail.Averages)

	return detail, nil
}

// buildIdentity extracts the identity fields and season totals from the team
// profile payload.
func (s *TeamService) buildIdentity(profileDoc fieldpath.Doc) team.Detail {
	t := fieldpath.Map(profileDoc, "team")
	if t == nil {
		t = profileDoc
	}

	logo, _ := fieldpath.First(t,
		[]any{"logos", 0, "href"},
		[]any{"logo"},
	)
	record, _ := fieldpath.First(t,
		[]any{"record", "items", 0, "summary"},
		[]any{"record", "summary"},
	)

	detail := team.Detail{
		ID:           fieldpath.String(t, "", "id"),
		Abbreviation: fieldpath.String(t, "", "abbreviation"),
		Name:         fieldpath.String(t, fieldpath.String(t, "", "name"), "displayName"),
		City:         fieldpath.String(t, "", "location"),
		LogoURL:      fieldpath.CoerceString(logo, ""),
		Record:       fieldpath.CoerceString(record, ""),
	}

	var wins, losses int
	var pointsFor, pointsAgainst float64
	for _, raw := range fieldpath.Slice(t, "record", "items", 0, "stats") {
		stat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		value := fieldpath.Float(stat, 0, "value")
		switch fieldpath.String(stat, "", "name") {
		case "wins":
			wins = int(value)
		case "losses":
			losses = int(value)
		case "pointsFor":
			pointsFor = value
		case "pointsAgainst":
			pointsAgainst = value
		}
	}
	detail.Averages = team.PerGameAverages(pointsFor, pointsAgainst, wins, losses)
	return detail
}

// normalizeRosterDoc locates the roster list wherever this team's payload put
// it and reconciles the two encodings.
func normalizeRosterDoc(rosterDoc fieldpath.Doc) []roster.Entry {
	if rosterDoc == nil {
		return nil
	}
	payload := fieldpath.Slice(rosterDoc, "athletes")
	if payload == nil {
		payload = fieldpath.Slice(rosterDoc, "roster")
	}
	if payload == nil {
		payload = fieldpath.Slice(rosterDoc, "team", "athletes")
	}
	return roster.Normalize(payload)
}

func scheduleEventsOf(scheduleDoc fieldpath.Doc) []fieldpath.Doc {
	var events []fieldpath.Doc
	for _, raw := range fieldpath.Slice(scheduleDoc, "events") {
		if event, ok := raw.(map[string]any); ok {
			events = append(events, event)
		}
	}
	return events
}

// scheduleGame is one schedule event reduced to the bits the aggregator needs.
type scheduleGame struct {
	id         string
	date       string
	startTime  time.Time
	statusName string
	completed  bool
	teamScore  *int
	oppScore   *int
	opponent   string
	home       bool
	matched    bool
	detail     string
}

func (s *TeamService) reduceScheduleEvent(event fieldpath.Doc, detail team.Detail, teamID string) scheduleGame {
	competition := fieldpath.Map(event, "competitions", 0)
	if competition == nil {
		competition = event
	}

	statusName, _ := fieldpath.First(competition,
		[]any{"status", "type", "name"},
		[]any{"status", "type", "description"},
	)

	g := scheduleGame{
		id:         fieldpath.String(event, "", "id"),
		date:       fieldpath.String(event, fieldpath.String(competition, "", "date"), "date"),
		statusName: fieldpath.CoerceString(statusName, ""),
		completed:  fieldpath.Bool(competition, false, "status", "type", "completed"),
		detail:     fieldpath.String(competition, "", "status", "type", "shortDetail"),
	}
	if t, err := time.Parse(time.RFC3339, g.date); err == nil {
		g.startTime = t
	} else if t, err := time.Parse("2006-01-02T15:04Z", g.date); err == nil {
		g.startTime = t
	}

	for _, raw := range fieldpath.Slice(competition, "competitors") {
		competitor, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		score := fieldpath.IntPtr(competitor, "score", "value")
		if score == nil {
			score = fieldpath.IntPtr(competitor, "score")
		}
		if s.matchesTeam(competitor, detail, teamID) {
			g.matched = true
			g.teamScore = score
			g.home = fieldpath.String(competitor, "", "homeAway") == "home"
			continue
		}
		g.oppScore = score
		opponent, _ := fieldpath.First(competitor,
			[]any{"team", "abbreviation"},
			[]any{"team", "displayName"},
			[]any{"team", "name"},
		)
		g.opponent = fieldpath.CoerceString(opponent, "")
	}
	return g
}

// matchesTeam identifies the aggregated team's side of a competition by
// identifier or abbreviation, falling back to a raw string compare.
func (s *TeamService) matchesTeam(competitor fieldpath.Doc, detail team.Detail, teamID string) bool {
	if id := fieldpath.String(competitor, "", "team", "id"); id != "" && id == teamID {
		return true
	}
	if abbr := fieldpath.String(competitor, "", "team", "abbreviation"); abbr != "" && abbr == detail.Abbreviation {
		return true
	}
	return fieldpath.String(competitor, "", "id") == teamID
}

// lastFiveGames filters the schedule to completed games and keeps the most
// recent five, newest first.
func (s *TeamService) lastFiveGames(events []fieldpath.Doc, detail team.Detail, teamID string, now time.Time) []team.CompletedGame {
	var completed []scheduleGame
	for _, event := range events {
		g := s.reduceScheduleEvent(event, detail, teamID)
		if !g.matched {
			continue
		}
		// The start-time fallback covers events with no status and stale
		// scheduled ones. A live status keeps the game out of last-five; it
		// belongs to the next-game state machine instead.
		finished := g.completed || team.IsFinalStatus(g.statusName) ||
			(!team.IsLiveStatus(g.statusName) && !g.startTime.IsZero() && g.startTime.Before(now))
		if finished {
			completed = append(completed, g)
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].startTime.After(completed[j].startTime)
	})
	if len(completed) > lastFiveCount {
		completed = completed[:lastFiveCount]
	}

	out := make([]team.CompletedGame, 0, len(completed))
	for _, g := range completed {
		teamScore, oppScore := 0, 0
		if g.teamScore != nil {
			teamScore = *g.teamScore
		}
		if g.oppScore != nil {
			oppScore = *g.oppScore
		}
		out = append(out, team.CompletedGame{
			ID:       g.id,
			Date:     g.date,
			Opponent: g.opponent,
			Score:    fmt.Sprintf("%d-%d", teamScore, oppScore),
			Won:      teamScore > oppScore,
			Home:     g.home,
		})
	}
	return out
}

// nextGameState runs the off/today/tomorrow/live machine over the team's next
// event, capturing the live score breakdown when the game is underway.
func (s *TeamService) nextGameState(events []fieldpath.Doc, detail team.Detail, teamID string, now time.Time) (team.GameStatus, *team.LiveScore) {
	var next *scheduleGame
	for _, event := range events {
		g := s.reduceScheduleEvent(event, detail, teamID)
		if !g.matched || g.startTime.IsZero() {
			continue
		}
		upcoming := !g.completed && !team.IsFinalStatus(g.statusName)
		if !upcoming {
			continue
		}
		if next == nil || g.startTime.Before(next.startTime) {
			g := g
			next = &g
		}
	}
	if next == nil {
		return team.StatusOff, nil
	}

	status := team.NextGameStatus(next.startTime, next.statusName, now)
	if status != team.StatusLive {
		return status, nil
	}
	return team.StatusLive, &team.LiveScore{
		TeamScore:     next.teamScore,
		OpponentScore: next.oppScore,
		Opponent:      next.opponent,
		Detail:        next.detail,
	}
}

// buildRankings probes the three places upstream hides stat categories and
// falls back to the computed point averages when no ranked stat survives.
func (s *TeamService) buildRankings(statsDoc fieldpath.Doc, averages team.Averages) team.Rankings {
	var categories []any
	if statsDoc != nil {
		probes := [][]any{
			{"results", "stats", "categories"},
			{"statistics", "splits", "categories"},
			{"splits", "categories"},
		}
		for _, probe := range probes {
			if found := fieldpath.Slice(statsDoc, probe...); len(found) > 0 {
				categories = found
				break
			}
		}
	}

	var ranked []team.RankedStat
	for _, rawCategory := range categories {
		category, ok := rawCategory.(map[string]any)
		if !ok {
			continue
		}
		for _, rawStat := range fieldpath.Slice(category, "stats") {
			stat, ok := rawStat.(map[string]any)
			if !ok {
				continue
			}
			rank := fieldpath.Int(stat, 0, "rank")
			displayValue := fieldpath.String(stat, "", "displayValue")
			if rank == 0 || displayValue == "" {
				continue
			}
			name := fieldpath.String(stat, fieldpath.String(stat, "", "name"), "displayName")
			ranked = append(ranked, team.RankedStat{
				Name:         name,
				DisplayValue: displayValue,
				Rank:         rank,
			})
		}
	}

	rankings := team.BuildRankings(ranked)
	if len(rankings.All) == 0 {
		rankings.Strengths = []team.RankedStat{
			{Name: "Points Per Game", DisplayValue: fmt.Sprintf("%.1f", averages.PointsFor)},
			{Name: "Opp Points Per Game", DisplayValue: fmt.Sprintf("%.1f", averages.PointsAgainst)},
		}
	}
	return rankings
}
