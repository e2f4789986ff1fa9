package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/scorepad/internal/model"
)

// The functions in this file are pure transitions: they never touch storage and
// never mutate their input game, returning a new game instead.

// NewGame builds a game with one empty round and a zeroed snapshot of each player
func NewGame(id model.GameID, tmpl model.Template, players []model.Player, now time.Time) (*model.Game, error) {
	if len(players) == 0 {
		return nil, model.ErrInsufficientPlayers
	}
	if !tmpl.ScoringType.Valid() {
		return nil, model.ErrInvalidScoringType
	}

	snapshot := make([]model.GamePlayer, len(players))
	for i, p := range players {
		snapshot[i] = model.NewGamePlayer(p)
	}

	return &model.Game{
		ID:        id,
		Template:  tmpl,
		Players:   snapshot,
		Rounds:    []model.Round{model.NewRound(len(players))},
		StartTime: now,
	}, nil
}

// ParseScore converts user input to a score slot.
// Blank input clears the slot (nil); anything that is not a finite number is rejected.
func ParseScore(raw string) (*float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidScore, raw)
	}
	return &v, nil
}

// ApplyScore writes score into rounds[roundIndex][playerIndex].
//
// roundIndex may address the round just past the end, which is created empty first.
// Anything further out is rejected rather than backfilled. Once every slot of the
// trailing round holds a score, exactly one new empty round is appended.
func ApplyScore(game *model.Game, roundIndex, playerIndex int, score *float64) (*model.Game, error) {
	if roundIndex < 0 || roundIndex > len(game.Rounds) {
		return nil, fmt.Errorf("%w: %d", model.ErrRoundOutOfRange, roundIndex)
	}
	if playerIndex < 0 || playerIndex >= len(game.Players) {
		return nil, fmt.Errorf("%w: %d", model.ErrPlayerIndexOutOfRange, playerIndex)
	}

	next := game.Clone()
	if roundIndex == len(next.Rounds) {
		next.Rounds = append(next.Rounds, model.NewRound(len(next.Players)))
	}

	var slot *float64
	if score != nil {
		v := *score
		slot = &v
	}
	next.Rounds[roundIndex][playerIndex] = slot

	if next.LastRound().IsFull() {
		next.Rounds = append(next.Rounds, model.NewRound(len(next.Players)))
	}

	return next, nil
}

// Totals sums each player's scores across all rounds, counting empty slots as 0
func Totals(game *model.Game) []float64 {
	if game == nil {
		return []float64{}
	}

	totals := make([]float64, len(game.Players))
	for _, round := range game.Rounds {
		for i, s := range round {
			if s != nil && i < len(totals) {
				totals[i] += *s
			}
		}
	}
	return totals
}

// WinnerIndex returns the index of the winning total, or -1 for no players.
// Ties go to the earliest player: a later total only wins if strictly better.
func WinnerIndex(totals []float64, scoring model.ScoringType) int {
	if len(totals) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(totals); i++ {
		if scoring == model.ScoringReverse {
			if totals[i] < totals[best] {
				best = i
			}
		} else if totals[i] > totals[best] {
			best = i
		}
	}
	return best
}

// Finalize seals the game: totals are written into each player, the winner is
// resolved under the template's scoring policy and the end time is stamped.
func Finalize(game *model.Game, now time.Time) *model.Game {
	next := game.Clone()

	totals := Totals(next)
	for i := range next.Players {
		next.Players[i].TotalScore = totals[i]
	}

	if idx := WinnerIndex(totals, next.Template.ScoringType); idx >= 0 {
		winner := next.Players[idx]
		next.Winner = &winner
	}

	end := now
	next.EndTime = &end
	next.IsFinished = true

	return next
}
