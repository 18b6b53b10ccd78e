package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// National broadcasts bump a game's watchability. Matching is by substring so
// sibling channels (ESPN2, CBS Sports Network) qualify too.
var nationalNetworks = []string{"ESPN", "TNT", "ABC", "NBC", "CBS", "FOX", "NBA TV"}

const (
	nationalBroadcastBonus = 15
	eliteMatchupThreshold  = 0.55
	mediumImpactThreshold  = 0.45
)

// WinPct parses a "W-L" record summary into a win percentage. An absent or
// malformed record is neutral: 0.5.
func WinPct(record string) float64 {
	parts := strings.SplitN(strings.TrimSpace(record), "-", 2)
	if len(parts) != 2 {
		return 0.5
	}
	wins, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	losses, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil || wins < 0 || losses < 0 || wins+losses == 0 {
		return 0.5
	}
	return float64(wins) / float64(wins+losses)
}

// CombinedWinPct is the mean of both sides' win percentages.
func CombinedWinPct(awayRecord, homeRecord string) float64 {
	return (WinPct(awayRecord) + WinPct(homeRecord)) / 2
}

// Watchability computes the derived rating from the two record summaries and
// the broadcast names. It is a pure function of its inputs.
func Watchability(awayRecord, homeRecord string, broadcasts []string) int {
	combined := CombinedWinPct(awayRecord, homeRecord)
	score := 50 + combined*30
	if HasNationalBroadcast(broadcasts) {
		score += nationalBroadcastBonus
	}
	return int(math.Round(score))
}

// HasNationalBroadcast reports whether any broadcast name contains a national
// network token.
func HasNationalBroadcast(broadcasts []string) bool {
	for _, name := range broadcasts {
		upper := strings.ToUpper(name)
		for _, network := range nationalNetworks {
			if strings.Contains(upper, network) {
				return true
			}
		}
	}
	return false
}

// WhyWatch builds the narrative line. A headline from upstream wins over the
// synthesized default, but the elite-matchup sentence overrides both once the
// combined win percentage clears the threshold. Last write wins.
func WhyWatch(headline, awayName, homeName, awayRecord, homeRecord string) string {
	why := strings.TrimSpace(headline)
	if why == "" {
		why = fmt.Sprintf("%s visits %s in tonight's action.", awayName, homeName)
	}
	if CombinedWinPct(awayRecord, homeRecord) > eliteMatchupThreshold {
		why = fmt.Sprintf("Elite matchup: %s (%s) at %s (%s) are two of the hottest teams going.",
			awayName, awayRecord, homeName, homeRecord)
	}
	return why
}

// PlayoffImpact tiers the matchup quality signal.
func PlayoffImpact(awayRecord, homeRecord string) string {
	combined := CombinedWinPct(awayRecord, homeRecord)
	switch {
	case combined > eliteMatchupThreshold:
		return "High"
	case combined > mediumImpactThreshold:
		return "Medium"
	default:
		return "Low"
	}
}
