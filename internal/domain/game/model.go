package game

import "time"

// TeamSummary is the abbreviation-keyed team identity embedded in games,
// rosters and opponent contexts. It is never persisted on its own.
type TeamSummary struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	City         string `json:"city,omitempty"`
	LogoURL      string `json:"logo,omitempty"`
	Record       string `json:"record,omitempty"`
}

// Game is one normalized contest, constructed fresh per request from a single
// upstream event and never mutated afterwards.
type Game struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	StartTime  time.Time   `json:"startTime"`
	Network    string      `json:"network,omitempty"`
	StatusName string      `json:"status"`
	HomeScore  *int        `json:"homeScore"`
	AwayScore  *int        `json:"awayScore"`
	Home       TeamSummary `json:"home"`
	Away       TeamSummary `json:"away"`

	// Score is the derived watchability rating, deterministic for a given
	// upstream record. Values above 100 are allowed.
	Score    int               `json:"score"`
	WhyWatch string            `json:"whyWatch"`
	Signals  map[string]string `json:"signals"`

	// Betting is reserved for a future odds integration and is always absent.
	Betting any `json:"betting,omitempty"`
}
