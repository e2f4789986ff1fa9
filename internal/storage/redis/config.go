package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// KeyPrefix namespaces every key, so one Redis can hold several scorepads
	KeyPrefix string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ActiveGameTTL expires an abandoned session; zero keeps it forever
	ActiveGameTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		KeyPrefix:     "scorepad",
		PoolSize:      10,
		MinIdleConns:  2,
		ActiveGameTTL: 0,
	}
}
