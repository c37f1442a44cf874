// Package memory is a process-local settings store.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/bnema/page-push/internal/ports"
)

type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.SettingsStore = (*Store)(nil)

func NewStore(seed map[string]string) *Store {
	values := make(map[string]string, len(seed))
	maps.Copy(values, seed)

	return &Store{values: values}
}

func (s *Store) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := s.values[key]; ok {
			result[key] = value
		}
	}

	return result, nil
}

func (s *Store) Set(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.values, values)

	return nil
}

// Snapshot returns a copy of every stored value.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.values)
}
