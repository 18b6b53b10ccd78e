package team

import (
	"github.com/gamedayhq/gameday/internal/domain/roster"
)

// GameStatus is the team's derived next-game state.
type GameStatus string

const (
	StatusOff      GameStatus = "off"
	StatusToday    GameStatus = "today"
	StatusTomorrow GameStatus = "tomorrow"
	StatusLive     GameStatus = "live"
)

// RankedStat is one stat line carrying an upstream league rank.
type RankedStat struct {
	Name         string `json:"name"`
	DisplayValue string `json:"displayValue"`
	Rank         int    `json:"rank"`
}

// Rankings partitions a team's ranked stats into headline groups.
// Strengths hold the best six ascending by rank; weaknesses hold the worst
// three with the best-of-the-worst first; All keeps the unordered full set.
type Rankings struct {
	Strengths  []RankedStat `json:"strengths"`
	Weaknesses []RankedStat `json:"weaknesses"`
	All        []RankedStat `json:"all"`
}

// CompletedGame is one finished contest from the team's recent schedule.
type CompletedGame struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Score    string `json:"score"`
	Won      bool   `json:"won"`
	Home     bool   `json:"home"`
}

// LiveScore is the per-competitor score breakdown of an in-progress game.
type LiveScore struct {
	TeamScore     *int   `json:"teamScore"`
	OpponentScore *int   `json:"opponentScore"`
	Opponent      string `json:"opponent"`
	Detail        string `json:"detail,omitempty"`
}

// Injury is one roster entry surfaced on the injury report.
type Injury struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Status   string `json:"status"`
}

// Averages are computed per-game scoring figures, one decimal place.
type Averages struct {
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

// Detail is the full aggregate for one team.
type Detail struct {
	ID           string          `json:"id"`
	Abbreviation string          `json:"abbreviation"`
	Name         string          `json:"name"`
	City         string          `json:"city,omitempty"`
	LogoURL      string          `json:"logo,omitempty"`
	Record       string          `json:"record,omitempty"`
	Averages     Averages        `json:"averages"`
	Rankings     Rankings        `json:"rankings"`
	LastFive     []CompletedGame `json:"lastFive"`
	GameStatus   GameStatus      `json:"gameStatus"`
	LiveScore    *LiveScore      `json:"liveScore,omitempty"`
	Roster       []roster.Entry  `json:"roster"`
	Injuries     []Injury        `json:"injuries"`
}
