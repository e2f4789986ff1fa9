package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/scorepad/internal/api"
	"github.com/mcoot/scorepad/internal/config"
	"github.com/mcoot/scorepad/internal/factory"
	redisstorage "github.com/mcoot/scorepad/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage,
		SQLitePath:  cfg.SQLitePath,
		HistoryCap:  cfg.HistoryCap,
	}
	if cfg.Storage == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("storage ready",
		slog.String("backend", cfg.Storage),
		slog.Int("history_cap", app.History.Cap()),
	)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Roster:            app.Roster,
		Templates:         app.Templates,
		History:           app.History,
		SessionController: app.SessionController,
		Events:            app.Events,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr()
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}

	logger.Info("server stopped")
}
