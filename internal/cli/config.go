package cli

import (
	"os"
	"time"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("SCOREPAD_SERVER", "http://localhost:8080"),
		Output:    OutputText,
		Timeout:   10 * time.Second,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
