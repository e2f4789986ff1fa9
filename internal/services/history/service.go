package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/storage"
)

// DefaultCap is the number of finished games kept
const DefaultCap = 100

// Service keeps the bounded, newest-first log of finished games
type Service struct {
	mu       sync.Mutex
	storage  storage.Storage
	maxGames int
	logger   *slog.Logger
}

// New creates a new history Service; a non-positive cap falls back to DefaultCap
func New(storage storage.Storage, maxGames int, logger *slog.Logger) *Service {
	if maxGames <= 0 {
		maxGames = DefaultCap
	}
	return &Service{
		storage:  storage,
		maxGames: maxGames,
		logger:   logger,
	}
}

// Cap returns the maximum number of retained games
func (s *Service) Cap() int {
	return s.maxGames
}

func (s *Service) load(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	if _, err := storage.LoadJSON(ctx, s.storage, storage.KeyHistory, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*model.Game{}
	}
	return games, nil
}

// AddGame stores a copy of game at the front of the log, evicting the oldest beyond the cap
func (s *Service) AddGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.load(ctx)
	if err != nil {
		return err
	}

	games = append([]*model.Game{game.Clone()}, games...)
	evicted := 0
	if len(games) > s.maxGames {
		evicted = len(games) - s.maxGames
		games = games[:s.maxGames]
	}

	if err := storage.SaveJSON(ctx, s.storage, storage.KeyHistory, games); err != nil {
		s.logger.Error("failed to save history",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("game recorded",
		slog.String("game_id", string(game.ID)),
		slog.Int("history_size", len(games)),
		slog.Int("evicted", evicted),
	)
	return nil
}

// List returns the full log, newest first
func (s *Service) List(ctx context.Context) ([]*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Recent returns the newest n games
func (s *Service) Recent(ctx context.Context, n int) ([]*model.Game, error) {
	games, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Recent(games, n), nil
}

// LastFiveGames returns the newest five games
func (s *Service) LastFiveGames(ctx context.Context) ([]*model.Game, error) {
	return s.Recent(ctx, RecentLimit)
}

// TopPlayers returns the five most frequent player names across the log
func (s *Service) TopPlayers(ctx context.Context) ([]model.PlayerCount, error) {
	games, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return TopPlayers(games, TopPlayersLimit), nil
}
