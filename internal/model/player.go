package model

// PlayerID uniquely identifies a player in the roster
type PlayerID string

// Player is a roster entry
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// GamePlayer is a snapshot of a Player taken when a game starts
type GamePlayer struct {
	ID         PlayerID `json:"id"`
	Name       string   `json:"name"`
	TotalScore float64  `json:"totalScore"`
}

// NewGamePlayer snapshots a roster player with a zero total
func NewGamePlayer(p Player) GamePlayer {
	return GamePlayer{
		ID:   p.ID,
		Name: p.Name,
	}
}
