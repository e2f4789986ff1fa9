package memory

import (
	"context"
	"sync"

	"github.com/mcoot/scorepad/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		values: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the currently stored keys (test helper)
func (s *Storage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
