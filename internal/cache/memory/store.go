// Package memory is an in-process cache.Store. Nothing survives the process;
// it backs tests and the ":memory:" config value.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
)

type Store struct {
	mu     sync.RWMutex
	values map[string]string
	// GetErr, when set, is returned by every Get. Tests use it to simulate
	// a failing device store.
	GetErr error
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) Location() string { return constants.MemoryConfigPath }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
