package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key
var ErrKeyNotFound = errors.New("key not found")

// Keys for the four independently persisted state containers
const (
	KeyPlayers    = "players"
	KeyTemplates  = "gameTemplates"
	KeyActiveGame = "activeGame"
	KeyHistory    = "gameHistory"
)

// Storage is a flat key-value store holding serialized state
type Storage interface {
	// Get returns the stored value, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value under key into dst.
// Returns found=false (and leaves dst untouched) if the key is missing.
func LoadJSON(ctx context.Context, s Storage, key string, dst any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key
func SaveJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
