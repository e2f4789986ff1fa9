package roster

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/scorepad/internal/dependencies/random"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/storage"
)

// Service manages the player registry
type Service struct {
	mu      sync.Mutex
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new roster Service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

func (s *Service) load(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	if _, err := storage.LoadJSON(ctx, s.storage, storage.KeyPlayers, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (s *Service) save(ctx context.Context, players []model.Player) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyPlayers, players); err != nil {
		s.logger.Error("failed to save players", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// List returns every player in creation order
func (s *Service) List(ctx context.Context) ([]model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the player with the given id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].ID == id {
			return &players[i], nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

// Create adds a new player
func (s *Service) Create(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	player := model.Player{
		ID:   model.PlayerID(s.random.NewID()),
		Name: name,
	}
	players = append(players, player)

	if err := s.save(ctx, players); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)
	return &player, nil
}

// Rename changes a player's display name
func (s *Service) Rename(ctx context.Context, id model.PlayerID, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(players, id)
	if idx == -1 {
		return nil, model.ErrPlayerNotFound
	}
	players[idx].Name = name

	if err := s.save(ctx, players); err != nil {
		return nil, err
	}

	updated := players[idx]
	return &updated, nil
}

// Delete removes a player. Games already started keep their own snapshot.
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(players, id)
	if idx == -1 {
		return model.ErrPlayerNotFound
	}
	players = append(players[:idx], players[idx+1:]...)

	if err := s.save(ctx, players); err != nil {
		return err
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))
	return nil
}

func indexOf(players []model.Player, id model.PlayerID) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
