package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Round holds one score slot per player; nil means no score recorded yet
type Round []*float64

// NewRound creates a round with every slot empty
func NewRound(players int) Round {
	return make(Round, players)
}

// IsFull returns true if every slot has a score
func (r Round) IsFull() bool {
	for _, s := range r {
		if s == nil {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no score pointers with r
func (r Round) Clone() Round {
	out := make(Round, len(r))
	for i, s := range r {
		if s != nil {
			v := *s
			out[i] = &v
		}
	}
	return out
}

// Game is an active scoring session, or a finished one once IsFinished is set
type Game struct {
	ID         GameID       `json:"id"`
	Template   Template     `json:"template"`
	Players    []GamePlayer `json:"players"`
	Rounds     []Round      `json:"rounds"`
	StartTime  time.Time    `json:"startTime"`
	EndTime    *time.Time   `json:"endTime,omitempty"`
	IsFinished bool         `json:"isFinished"`
	Winner     *GamePlayer  `json:"winner,omitempty"`
}

// LastRound returns the trailing round, or nil if there are none
func (g *Game) LastRound() Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return g.Rounds[len(g.Rounds)-1]
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.Players = make([]GamePlayer, len(g.Players))
	copy(out.Players, g.Players)
	out.Rounds = make([]Round, len(g.Rounds))
	for i, r := range g.Rounds {
		out.Rounds[i] = r.Clone()
	}
	if g.EndTime != nil {
		t := *g.EndTime
		out.EndTime = &t
	}
	if g.Winner != nil {
		w := *g.Winner
		out.Winner = &w
	}
	return &out
}

// SessionStatus describes the state of the single session slot
type SessionStatus string

const (
	SessionAbsent     SessionStatus = "absent"      // No game running
	SessionInProgress SessionStatus = "in_progress" // Scores being recorded
	SessionFinished   SessionStatus = "finished"    // Sealed, awaiting hand-off to history
)

// Status reports the session status for an optional game
func (g *Game) Status() SessionStatus {
	switch {
	case g == nil:
		return SessionAbsent
	case g.IsFinished:
		return SessionFinished
	default:
		return SessionInProgress
	}
}

// PlayerCount is a leaderboard row: how many stored games a player name appears in
type PlayerCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
