package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCOREPAD_STORAGE",
		"SCOREPAD_SQLITE_PATH",
		"SCOREPAD_REDIS_URL",
		"SCOREPAD_HISTORY_CAP",
		"SCOREPAD_HOST",
		"SCOREPAD_PORT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "scorepad.db", cfg.SQLitePath)
	assert.Equal(t, 100, cfg.HistoryCap)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestParseOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCOREPAD_STORAGE", "memory")
	t.Setenv("SCOREPAD_HISTORY_CAP", "20")
	t.Setenv("SCOREPAD_HOST", "127.0.0.1")
	t.Setenv("SCOREPAD_PORT", "9000")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 20, cfg.HistoryCap)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown storage", "SCOREPAD_STORAGE", "postgres"},
		{"zero history cap", "SCOREPAD_HISTORY_CAP", "0"},
		{"non-numeric cap", "SCOREPAD_HISTORY_CAP", "lots"},
		{"port out of range", "SCOREPAD_PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCOREPAD_STORAGE=redis\nSCOREPAD_REDIS_URL=redis://cache:6379\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SCOREPAD_STORAGE")
		_ = os.Unsetenv("SCOREPAD_REDIS_URL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
}

func TestLoadIgnoresMissingDotenv(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage)
}
