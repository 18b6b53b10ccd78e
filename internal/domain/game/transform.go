package game

import (
	"sort"
	"time"

	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
)

// Transform normalizes one raw scoreboard event into a Game. A record without
// a resolvable competition, or without both a home and an away side, is a
// malformed upstream row and is rejected (dropped silently by callers).
func Transform(event fieldpath.Doc) (Game, bool) {
	competition := fieldpath.Map(event, "competitions", 0)
	if competition == nil {
		return Game{}, false
	}

	var home, away fieldpath.Doc
	for _, raw := range fieldpath.Slice(competition, "competitors") {
		competitor, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch fieldpath.String(competitor, "", "homeAway") {
		case "home":
			home = competitor
		case "away":
			away = competitor
		}
	}
	if home == nil || away == nil {
		return Game{}, false
	}

	homeSummary := transformTeamSummary(home)
	awaySummary := transformTeamSummary(away)
	broadcasts := collectBroadcasts(competition)

	headline, _ := fieldpath.First(event,
		[]any{"competitions", 0, "notes", 0, "headline"},
		[]any{"headline"},
	)

	rawDate := fieldpath.String(event, "", "date")
	startTime, _ := parseEventTime(rawDate)

	g := Game{
		ID:         fieldpath.String(event, "", "id"),
		Date:       rawDate,
		StartTime:  startTime,
		Network:    firstBroadcast(broadcasts),
		StatusName: statusName(event, competition),
		HomeScore:  fieldpath.IntPtr(home, "score"),
		AwayScore:  fieldpath.IntPtr(away, "score"),
		Home:       homeSummary,
		Away:       awaySummary,
		Score:      Watchability(awaySummary.Record, homeSummary.Record, broadcasts),
		WhyWatch: WhyWatch(
			fieldpath.CoerceString(headline, ""),
			awaySummary.Name, homeSummary.Name,
			awaySummary.Record, homeSummary.Record,
		),
		Signals: map[string]string{
			"playoffImpact": PlayoffImpact(awaySummary.Record, homeSummary.Record),
			"rivalry":       "Unknown",
			"starPower":     "Unknown",
		},
	}
	return g, true
}

// SortByScore orders games best-watch first. Stable so same-score games keep
// their upstream order.
func SortByScore(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Score > games[j].Score
	})
}

func transformTeamSummary(competitor fieldpath.Doc) TeamSummary {
	record, _ := fieldpath.First(competitor,
		[]any{"records", 0, "summary"},
		[]any{"record", "summary"},
		[]any{"record"},
	)

	logo, _ := fieldpath.First(competitor,
		[]any{"team", "logo"},
		[]any{"team", "logos", 0, "href"},
	)

	return TeamSummary{
		ID:           fieldpath.String(competitor, "", "team", "id"),
		Abbreviation: fieldpath.String(competitor, "", "team", "abbreviation"),
		Name: fieldpath.String(competitor,
			fieldpath.String(competitor, "", "team", "name"),
			"team", "displayName"),
		City:    fieldpath.String(competitor, "", "team", "location"),
		LogoURL: fieldpath.CoerceString(logo, ""),
		Record:  fieldpath.CoerceString(record, ""),
	}
}

func collectBroadcasts(competition fieldpath.Doc) []string {
	var names []string
	for _, raw := range fieldpath.Slice(competition, "broadcasts") {
		broadcast, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, nameRaw := range fieldpath.Slice(broadcast, "names") {
			if name := fieldpath.CoerceString(nameRaw, ""); name != "" {
				names = append(names, name)
			}
		}
	}
	if single := fieldpath.String(competition, "", "broadcast"); single != "" {
		names = append(names, single)
	}
	return names
}

func firstBroadcast(broadcasts []string) string {
	if len(broadcasts) == 0 {
		return ""
	}
	return broadcasts[0]
}

func statusName(event, competition fieldpath.Doc) string {
	name, _ := fieldpath.First(event,
		[]any{"status", "type", "name"},
		[]any{"status", "type", "description"},
	)
	if s := fieldpath.CoerceString(name, ""); s != "" {
		return s
	}
	name, _ = fieldpath.First(competition,
		[]any{"status", "type", "name"},
		[]any{"status", "type", "description"},
	)
	return fieldpath.CoerceString(name, "STATUS_SCHEDULED")
}

func parseEventTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
