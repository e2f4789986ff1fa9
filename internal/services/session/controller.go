package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/scorepad/internal/dependencies/clock"
	"github.com/mcoot/scorepad/internal/dependencies/random"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/storage"
)

// HistoryRecorder receives finished games
type HistoryRecorder interface {
	AddGame(ctx context.Context, game *model.Game) error
}

// TemplateGetter resolves template ids at game start
type TemplateGetter interface {
	Get(ctx context.Context, id model.TemplateID) (*model.Template, error)
}

// PlayerGetter resolves player ids at game start
type PlayerGetter interface {
	Get(ctx context.Context, id model.PlayerID) (*model.Player, error)
}

// Notifier receives an event after every successful session mutation
type Notifier interface {
	Publish(event model.SessionEvent)
}

// Controller owns the single active game and its persistence
type Controller struct {
	mu        sync.Mutex
	storage   storage.Storage
	history   HistoryRecorder
	templates TemplateGetter
	players   PlayerGetter
	notifier  Notifier
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	history HistoryRecorder,
	templates TemplateGetter,
	players PlayerGetter,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		history:   history,
		templates: templates,
		players:   players,
		clock:     clock,
		random:    random,
		logger:    logger,
	}
}

// SetNotifier attaches a live event subscriber; nil disables notifications
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// notify must be called with c.mu held
func (c *Controller) notify(eventType model.SessionEventType, game *model.Game) {
	if c.notifier == nil {
		return
	}
	c.notifier.Publish(model.SessionEvent{
		Type:   eventType,
		Game:   game.Clone(),
		Totals: Totals(game),
	})
}

// load reads the active game, returning nil when there is none
func (c *Controller) load(ctx context.Context) (*model.Game, error) {
	var game *model.Game
	if _, err := storage.LoadJSON(ctx, c.storage, storage.KeyActiveGame, &game); err != nil {
		return nil, err
	}
	return game, nil
}

// save writes the active game through to storage
func (c *Controller) save(ctx context.Context, game *model.Game) error {
	if err := storage.SaveJSON(ctx, c.storage, storage.KeyActiveGame, game); err != nil {
		c.logger.Error("failed to save active game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// clear removes the persisted active game
func (c *Controller) clear(ctx context.Context) error {
	if err := c.storage.Delete(ctx, storage.KeyActiveGame); err != nil {
		c.logger.Error("failed to clear active game", slog.String("error", err.Error()))
		return fmt.Errorf("clear active game: %w", err)
	}
	return nil
}

// Start begins a new game from snapshots of the template and players.
// Any game already in progress is replaced without being recorded.
func (c *Controller) Start(ctx context.Context, tmpl model.Template, players []model.Player) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := NewGame(model.GameID(c.random.NewID()), tmpl, players, c.clock.Now())
	if err != nil {
		return nil, err
	}

	previous, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		c.logger.Warn("replacing unfinished game",
			slog.String("game_id", string(previous.ID)),
			slog.Int("rounds", len(previous.Rounds)),
		)
	}

	if err := c.save(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.String("template", game.Template.Name),
		slog.String("scoring", string(game.Template.ScoringType)),
		slog.Int("player_count", len(game.Players)),
	)
	c.notify(model.EventSessionStarted, game)

	return game, nil
}

// StartByID resolves the template and players from their registries, then starts a game
func (c *Controller) StartByID(ctx context.Context, templateID model.TemplateID, playerIDs []model.PlayerID) (*model.Game, error) {
	if len(playerIDs) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	tmpl, err := c.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := c.players.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}

	return c.Start(ctx, *tmpl, players)
}

// Get returns the active game, or ErrNoActiveGame
func (c *Controller) Get(ctx context.Context) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, model.ErrNoActiveGame
	}
	return game, nil
}

// Status reports whether a game is running
func (c *Controller) Status(ctx context.Context) (model.SessionStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return game.Status(), nil
}

// Totals returns the running totals, empty when no game is active
func (c *Controller) Totals(ctx context.Context) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return Totals(game), nil
}

// UpdateScore records raw (blank clears the slot) for one player in one round
func (c *Controller) UpdateScore(ctx context.Context, roundIndex, playerIndex int, raw string) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, model.ErrNoActiveGame
	}

	score, err := ParseScore(raw)
	if err != nil {
		return nil, err
	}

	next, err := ApplyScore(game, roundIndex, playerIndex, score)
	if err != nil {
		return nil, err
	}

	if err := c.save(ctx, next); err != nil {
		return nil, err
	}

	if len(next.Rounds) > len(game.Rounds) {
		c.logger.Debug("round opened",
			slog.String("game_id", string(next.ID)),
			slog.Int("rounds", len(next.Rounds)),
		)
	}
	c.notify(model.EventScoreUpdated, next)

	return next, nil
}

// Finish seals the active game, records it in history and clears the session.
// The history write and the session delete are separate; a failure between them
// leaves the game in both places.
func (c *Controller) Finish(ctx context.Context) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, model.ErrNoActiveGame
	}

	finished := Finalize(game, c.clock.Now())

	if err := c.history.AddGame(ctx, finished); err != nil {
		return nil, err
	}

	if err := c.clear(ctx); err != nil {
		return nil, err
	}

	attrs := []any{
		slog.String("game_id", string(finished.ID)),
		slog.Int("rounds", len(finished.Rounds)),
	}
	if finished.Winner != nil {
		attrs = append(attrs, slog.String("winner", finished.Winner.Name))
	}
	c.logger.Info("game finished", attrs...)
	c.notify(model.EventSessionFinished, finished)

	return finished, nil
}

// Cancel discards the active game without recording it; a no-op if none is running
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.clear(ctx); err != nil {
		return err
	}

	c.logger.Info("game cancelled")
	c.notify(model.EventSessionCancelled, nil)
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Start(ctx context.Context, tmpl model.Template, players []model.Player) (*model.Game, error)
	StartByID(ctx context.Context, templateID model.TemplateID, playerIDs []model.PlayerID) (*model.Game, error)
	Get(ctx context.Context) (*model.Game, error)
	Status(ctx context.Context) (model.SessionStatus, error)
	Totals(ctx context.Context) ([]float64, error)
	UpdateScore(ctx context.Context, roundIndex, playerIndex int, raw string) (*model.Game, error)
	Finish(ctx context.Context) (*model.Game, error)
	Cancel(ctx context.Context) error
}

var _ ControllerInterface = (*Controller)(nil)
