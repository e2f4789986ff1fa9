package history

import (
	"sort"

	"github.com/mcoot/scorepad/internal/model"
)

// Dashboard sizes
const (
	RecentLimit     = 5
	TopPlayersLimit = 5
)

// Recent returns the first n games of a newest-first log
func Recent(games []*model.Game, n int) []*model.Game {
	if n < 0 {
		n = 0
	}
	if n > len(games) {
		n = len(games)
	}
	result := make([]*model.Game, n)
	copy(result, games[:n])
	return result
}

// TopPlayers counts how many games each player name appears in and returns the
// n most frequent. Players are keyed by name, so two ids sharing a name merge.
// Equal counts keep first-seen order.
func TopPlayers(games []*model.Game, n int) []model.PlayerCount {
	index := make(map[string]int)
	var counts []model.PlayerCount

	for _, game := range games {
		for _, p := range game.Players {
			i, ok := index[p.Name]
			if !ok {
				i = len(counts)
				index[p.Name] = i
				counts = append(counts, model.PlayerCount{Name: p.Name})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	if counts == nil {
		counts = []model.PlayerCount{}
	}
	return counts
}
