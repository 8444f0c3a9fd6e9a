/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: memory.go
Description: In-memory answer store.
*/

package cache

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store, safe for concurrent use
type MemoryStore struct {
	mu      sync.RWMutex
	answers map[string]int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{answers: make(map[string]int)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.answers[key]
	return v, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[key] = value
	return nil
}

func (s *MemoryStore) Len(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answers), nil
}

func (s *MemoryStore) Close() error { return nil }
