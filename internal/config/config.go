package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds the server configuration, read from the environment
type Config struct {
	Storage    string `env:"SCOREPAD_STORAGE" envDefault:"sqlite"`
	SQLitePath string `env:"SCOREPAD_SQLITE_PATH" envDefault:"scorepad.db"`
	RedisURL   string `env:"SCOREPAD_REDIS_URL" envDefault:"redis://localhost:6379"`
	HistoryCap int    `env:"SCOREPAD_HISTORY_CAP" envDefault:"100"`
	Host       string `env:"SCOREPAD_HOST" envDefault:""`
	Port       int    `env:"SCOREPAD_PORT" envDefault:"8080"`
}

// Load reads an optional .env file and then parses the environment
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the environment only
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("invalid SCOREPAD_STORAGE %q: must be memory, sqlite or redis", c.Storage)
	}
	if c.Storage == StorageSQLite && c.SQLitePath == "" {
		return errors.New("SCOREPAD_SQLITE_PATH is required for sqlite storage")
	}
	if c.HistoryCap <= 0 {
		return fmt.Errorf("invalid SCOREPAD_HISTORY_CAP %d: must be positive", c.HistoryCap)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SCOREPAD_PORT %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
