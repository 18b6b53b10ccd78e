package sport

import "strings"

// Key identifies a supported sport in request paths and challenge identifiers.
type Key string

const (
	Basketball Key = "nba"
	Football   Key = "nfl"
	Baseball   Key = "mlb"
)

// RosterOrdering selects how the roster sorter arranges a flattened roster.
type RosterOrdering string

const (
	// OrderStartersThenBench splits starters ahead of bench players.
	OrderStartersThenBench RosterOrdering = "starters-then-bench"
	// OrderByPosition is a single list ordered by position priority.
	OrderByPosition RosterOrdering = "by-position"
	// OrderPassthrough leaves the upstream order untouched.
	OrderPassthrough RosterOrdering = "passthrough"
)

// Strategy is the per-sport dispatch table. Every sport-specific branch in the
// aggregation code reads from here instead of switching on the sport key.
type Strategy struct {
	Key            Key
	League         string
	ProviderPath   string
	RosterOrdering RosterOrdering

	// PositionPriority orders roster entries; unlisted positions sort last.
	PositionPriority map[string]int

	// StatCategory is the nested statistics block the player aggregator probes.
	StatCategory string

	// StatFields is the fixed per-sport stat subset exposed on player detail.
	StatFields []string
}

// UnlistedPositionPriority is assigned to positions absent from the table.
const UnlistedPositionPriority = 99

var strategies = map[Key]Strategy{
	Basketball: {
		Key:            Basketball,
		League:         "NBA",
		ProviderPath:   "basketball/nba",
		RosterOrdering: OrderStartersThenBench,
		PositionPriority: map[string]int{
			"PG": 1, "SG": 2, "SF": 3, "PF": 4, "C": 5, "G": 6, "F": 7,
		},
		StatCategory: "perGame",
		StatFields: []string{
			"points", "rebounds", "assists", "steals", "blocks", "fieldGoalPct",
		},
	},
	Football: {
		Key:            Football,
		League:         "NFL",
		ProviderPath:   "football/nfl",
		RosterOrdering: OrderByPosition,
		PositionPriority: map[string]int{
			"QB": 1,
			"RB": 2, "FB": 2,
			"WR": 3, "TE": 3,
			"OT": 4, "OG": 4, "C": 4, "G": 4, "T": 4, "OL": 4,
			"DE": 5, "DT": 5, "NT": 5, "DL": 5,
			"LB": 6, "OLB": 6, "MLB": 6, "ILB": 6,
			"CB": 7, "S": 7, "FS": 7, "SS": 7, "DB": 7,
			"K": 8, "P": 8, "LS": 8,
		},
		StatCategory: "totals",
		StatFields: []string{
			"passingYards", "rushingYards", "receivingYards",
			"totalTouchdowns", "totalTackles", "sacks",
		},
	},
	Baseball: {
		Key:            Baseball,
		League:         "MLB",
		ProviderPath:   "baseball/mlb",
		RosterOrdering: OrderByPosition,
		PositionPriority: map[string]int{
			"SP": 1,
			"C":  2,
			"1B": 3, "2B": 4, "3B": 5, "SS": 6,
			"LF": 7, "CF": 8, "RF": 9, "OF": 10,
			"DH": 11, "IF": 12,
			"RP": 90, "CP": 91, "P": 92,
		},
		StatCategory: "batting",
		StatFields: []string{
			"avg", "homeRuns", "RBIs", "hits", "runs", "stolenBases",
		},
	},
}

// Lookup resolves a request sport key; unknown keys report false.
func Lookup(raw string) (Strategy, bool) {
	s, ok := strategies[Key(strings.ToLower(strings.TrimSpace(raw)))]
	return s, ok
}

// All returns every configured strategy in a stable order.
func All() []Strategy {
	return []Strategy{strategies[Basketball], strategies[Football], strategies[Baseball]}
}

// WantsStat reports whether a stat name belongs to the sport's exposed subset.
func (s Strategy) WantsStat(name string) bool {
	for _, f := range s.StatFields {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// Priority returns the sort priority for a position code.
func (s Strategy) Priority(position string) int {
	if p, ok := s.PositionPriority[strings.ToUpper(strings.TrimSpace(position))]; ok {
		return p
	}
	return UnlistedPositionPriority
}
