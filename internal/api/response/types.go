package response

import (
	"github.com/mcoot/scorepad/internal/model"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// PlayerList wraps the player registry
type PlayerList struct {
	Players []model.Player `json:"players"`
}

// TemplateList wraps the template registry
type TemplateList struct {
	Templates []model.Template `json:"templates"`
}

// Session describes the active game, if any
type Session struct {
	Status model.SessionStatus `json:"status"`
	Game   *model.Game         `json:"game,omitempty"`
	Totals []float64           `json:"totals"`
}

// SessionFromModel builds a Session; game may be nil
func SessionFromModel(game *model.Game, totals []float64) Session {
	if totals == nil {
		totals = []float64{}
	}
	return Session{
		Status: game.Status(),
		Game:   game,
		Totals: totals,
	}
}

// Totals is the running total per player index
type Totals struct {
	Totals []float64 `json:"totals"`
}

// GameList wraps a slice of history entries
type GameList struct {
	Games []*model.Game `json:"games"`
}

// NewGameList builds a GameList, never encoding a null list
func NewGameList(games []*model.Game) GameList {
	if games == nil {
		games = []*model.Game{}
	}
	return GameList{Games: games}
}

// TopPlayers is the leaderboard response
type TopPlayers struct {
	Players []model.PlayerCount `json:"players"`
}
