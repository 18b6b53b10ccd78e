package challenge

import (
	"errors"
	"fmt"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/game"
	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/domain/team"
)

var (
	ErrAlreadyVoted = errors.New("already voted on this challenge")
	ErrVotingClosed = errors.New("voting closed, the game has started")
)

// Side is a binary challenge choice.
type Side string

const (
	SideAway Side = "away"
	SideHome Side = "home"
)

// Option is one of the two pickable sides, away first by convention.
type Option struct {
	Side         Side   `json:"side"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	Record       string `json:"record,omitempty"`
	LogoURL      string `json:"logo,omitempty"`
}

// Challenge is the single daily predictable event, derived 1:1 from the
// top-scored game of a sport and day. It is never created independently.
type Challenge struct {
	ID           string    `json:"id"`
	Sport        sport.Key `json:"sport"`
	GameID       string    `json:"gameId"`
	StartTime    time.Time `json:"startTime"`
	Options      [2]Option `json:"options"`
	GameStarted  bool      `json:"gameStarted"`
	GameFinished bool      `json:"gameFinished"`
	Winner       Side      `json:"winner,omitempty"`
	HomeScore    *int      `json:"homeScore"`
	AwayScore    *int      `json:"awayScore"`
}

// FromGame derives the day's challenge from the top-ranked game. Lifecycle
// flags come from the wall clock and the upstream status name; the winner is
// set only once the game is finished, as the side with the strictly greater
// score.
func FromGame(key sport.Key, g game.Game, now time.Time) Challenge {
	c := Challenge{
		ID:        fmt.Sprintf("%s-%s", key, g.ID),
		Sport:     key,
		GameID:    g.ID,
		StartTime: g.StartTime,
		Options: [2]Option{
			{Side: SideAway, Abbreviation: g.Away.Abbreviation, Name: g.Away.Name, Record: g.Away.Record, LogoURL: g.Away.LogoURL},
			{Side: SideHome, Abbreviation: g.Home.Abbreviation, Name: g.Home.Name, Record: g.Home.Record, LogoURL: g.Home.LogoURL},
		},
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
	}

	c.GameFinished = team.IsFinalStatus(g.StatusName)
	c.GameStarted = c.GameFinished || (!g.StartTime.IsZero() && !now.Before(g.StartTime))

	if c.GameFinished && g.HomeScore != nil && g.AwayScore != nil {
		if *g.HomeScore > *g.AwayScore {
			c.Winner = SideHome
		} else if *g.AwayScore > *g.HomeScore {
			c.Winner = SideAway
		}
	}
	return c
}

// Open reports whether votes are still accepted.
func (c Challenge) Open() bool {
	return !c.GameStarted && !c.GameFinished
}

// ValidSide reports whether raw names one of the two options.
func ValidSide(raw string) (Side, bool) {
	switch Side(raw) {
	case SideAway:
		return SideAway, true
	case SideHome:
		return SideHome, true
	default:
		return "", false
	}
}

// Vote is a user's locked choice for one challenge: written at most once,
// never mutated afterwards.
type Vote struct {
	ChallengeID string    `json:"challengeId"`
	Choice      Side      `json:"choice"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Outcome compares an earlier vote against the decided winner. It is
// presentation-only and never feeds back into the stored vote.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// Grade resolves a vote's outcome against the challenge state.
func Grade(c Challenge, v Vote) Outcome {
	if !c.GameFinished || c.Winner == "" {
		return OutcomePending
	}
	if v.Choice == c.Winner {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// ProfileStats are the user's lightweight aggregate counters.
type ProfileStats struct {
	Points   int     `json:"points"`
	Streak   int     `json:"streak"`
	Settled  int     `json:"settled"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

const pointsPerCorrectPick = 10

// Settle folds one decided outcome into the counters.
func (s ProfileStats) Settle(outcome Outcome) ProfileStats {
	if outcome != OutcomeCorrect && outcome != OutcomeIncorrect {
		return s
	}
	s.Settled++
	if outcome == OutcomeCorrect {
		s.Correct++
		s.Streak++
		s.Points += pointsPerCorrectPick
	} else {
		s.Streak = 0
	}
	s.Accuracy = float64(s.Correct) / float64(s.Settled)
	return s
}
