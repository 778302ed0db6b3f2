package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSecretNotFound is returned when a coordinate has no value in the store.
var ErrSecretNotFound = errors.New("secrets: secret not found")

// Store reads secret values by coordinate from a secret persistence backend.
type Store interface {
	// Read returns the secret value for the given coordinate.
	// Returns ErrSecretNotFound when the coordinate is unknown.
	Read(ctx context.Context, coordinate string) (string, error)
}

// MemoryStore is a map-backed Store, used as the default persistence in
// standalone setups and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a memory store seeded with the given values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}

	return &MemoryStore{values: copied}
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, coordinate string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[coordinate]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, coordinate)
	}

	return value, nil
}

// Write stores a secret value. Used to seed defaults and in tests.
func (s *MemoryStore) Write(_ context.Context, coordinate, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[coordinate] = value
}
