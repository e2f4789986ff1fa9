package random

import "github.com/google/uuid"

// Random generates identifiers for new players, templates and games
type Random interface {
	// NewID returns a fresh opaque unique identifier
	NewID() string
}

// UUIDRandom implements Random with random (v4) UUIDs
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// NewID returns a new v4 UUID string
func (r *UUIDRandom) NewID() string {
	return uuid.NewString()
}
