package cache

import (
	"context"
	"sync"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// Store persists completions by request key
type Store interface {
	// Get returns the completion stored under key, with ok reporting
	// whether an entry exists
	Get(ctx context.Context, key string) (*interfaces.Completion, bool, error)

	// Set stores a completion under key
	Set(ctx context.Context, key string, completion *interfaces.Completion) error
}

// InMemoryStore keeps completions in a process-local map
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]interfaces.Completion
}

// NewInMemoryStore creates an empty in-memory completion store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]interfaces.Completion),
	}
}

// Get returns a copy of the stored completion
func (s *InMemoryStore) Get(ctx context.Context, key string) (*interfaces.Completion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

// Set stores a copy of the completion
func (s *InMemoryStore) Set(ctx context.Context, key string, completion *interfaces.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = *completion
	return nil
}

// Len reports how many completions are stored
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*InMemoryStore)(nil)
