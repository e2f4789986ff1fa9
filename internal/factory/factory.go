package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/scorepad/internal/dependencies/clock"
	"github.com/mcoot/scorepad/internal/dependencies/random"
	"github.com/mcoot/scorepad/internal/events"
	"github.com/mcoot/scorepad/internal/services/history"
	"github.com/mcoot/scorepad/internal/services/roster"
	"github.com/mcoot/scorepad/internal/services/session"
	"github.com/mcoot/scorepad/internal/services/templates"
	"github.com/mcoot/scorepad/internal/storage"
	"github.com/mcoot/scorepad/internal/storage/memory"
	redisstorage "github.com/mcoot/scorepad/internal/storage/redis"
	"github.com/mcoot/scorepad/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Roster            *roster.Service
	Templates         *templates.Service
	History           *history.Service
	SessionController *session.Controller

	// Events fans session changes out to websocket subscribers
	Events *events.Hub

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// HistoryCap bounds the history log; zero means history.DefaultCap
	HistoryCap int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), cfg.HistoryCap, logger)
	app.closer = closer
	return app, nil
}

func openStorage(cfg Config) (storage.Storage, io.Closer, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return sqliteStore, sqliteStore, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis storage: %w", err)
		}
		return redisStore, redisStore, nil
	default:
		return nil, nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, historyCap int, logger *slog.Logger) *App {
	rosterService := roster.New(store, rnd, logger)
	templateService := templates.New(store, rnd, logger)
	historyService := history.New(store, historyCap, logger)
	sessionController := session.NewController(
		store,
		historyService,
		templateService,
		rosterService,
		clk,
		rnd,
		logger,
	)

	hub := events.NewHub(logger)
	go hub.Run()
	sessionController.SetNotifier(hub)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Roster:            rosterService,
		Templates:         templateService,
		History:           historyService,
		SessionController: sessionController,
		Events:            hub,
	}
}

// Close stops the event hub and releases the storage backend, if it holds any resources
func (a *App) Close() error {
	if a.Events != nil {
		a.Events.Close()
	}
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
