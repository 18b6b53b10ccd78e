package team

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/roster"
)

const (
	// Upstream ranks beyond 30 are stale placeholder rows, not real rankings.
	maxMeaningfulRank = 30

	strengthCount   = 6
	weaknessCount   = 3
	injuryReportCap = 5
)

// BuildRankings keeps stat lines with a meaningful rank, sorts them ascending
// and extracts the headline groups. Weaknesses come back reversed so the
// best-of-the-worst leads.
func BuildRankings(stats []RankedStat) Rankings {
	kept := make([]RankedStat, 0, len(stats))
	for _, s := range stats {
		if s.Rank > 0 && s.Rank <= maxMeaningfulRank && s.DisplayValue != "" {
			kept = append(kept, s)
		}
	}

	all := append([]RankedStat(nil), kept...)
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Rank < kept[j].Rank })

	strengths := kept
	if len(strengths) > strengthCount {
		strengths = strengths[:strengthCount]
	}

	var weaknesses []RankedStat
	if n := len(kept); n > 0 {
		start := n - weaknessCount
		if start < 0 {
			start = 0
		}
		worst := kept[start:]
		weaknesses = make([]RankedStat, 0, len(worst))
		for i := len(worst) - 1; i >= 0; i-- {
			weaknesses = append(weaknesses, worst[i])
		}
	}

	return Rankings{
		Strengths:  append([]RankedStat(nil), strengths...),
		Weaknesses: weaknesses,
		All:        all,
	}
}

// PerGameAverages derives scoring averages from season totals. A team with no
// decided games counts as one played game so the division stays defined.
func PerGameAverages(pointsFor, pointsAgainst float64, wins, losses int) Averages {
	gamesPlayed := wins + losses
	if gamesPlayed == 0 {
		gamesPlayed = 1
	}
	return Averages{
		PointsFor:     roundOneDecimal(pointsFor / float64(gamesPlayed)),
		PointsAgainst: roundOneDecimal(pointsAgainst / float64(gamesPlayed)),
	}
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// InjuryReport keeps roster entries whose status is present and not an Active
// variant, capped at five. The roster is already sport-sorted, so the report
// inherits that order.
func InjuryReport(entries []roster.Entry) []Injury {
	injuries := make([]Injury, 0, injuryReportCap)
	for _, e := range entries {
		if isActiveStatus(e.Status) {
			continue
		}
		injuries = append(injuries, Injury{
			PlayerID: e.ID,
			Name:     e.Name,
			Position: e.Position,
			Status:   e.Status,
		})
		if len(injuries) == injuryReportCap {
			break
		}
	}
	return injuries
}

func isActiveStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "" || strings.HasPrefix(s, "active")
}

// NextGameStatus runs the off/today/tomorrow/live state machine against the
// team's next scheduled event. A status name that indicates neither scheduled
// nor final overrides the calendar answer to live.
func NextGameStatus(nextEvent time.Time, statusName string, now time.Time) GameStatus {
	status := StatusOff
	if !nextEvent.IsZero() {
		switch {
		case sameCalendarDay(nextEvent, now):
			status = StatusToday
		case sameCalendarDay(nextEvent, now.AddDate(0, 0, 1)):
			status = StatusTomorrow
		}
	}

	if IsLiveStatus(statusName) {
		return StatusLive
	}
	return status
}

// IsLiveStatus reports whether a status name marks a game as underway:
// non-empty and neither scheduled nor final.
func IsLiveStatus(name string) bool {
	return name != "" && !isScheduledStatus(name) && !IsFinalStatus(name)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func isScheduledStatus(name string) bool {
	return strings.Contains(strings.ToLower(name), "sched")
}

// IsFinalStatus matches upstream final-state names ("STATUS_FINAL",
// "post-game" and friends), case-insensitive.
func IsFinalStatus(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "final") || strings.Contains(lower, "post")
}
