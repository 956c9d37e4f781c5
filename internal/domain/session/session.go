package session

import (
	"context"
	"sync"
)

// FlagStore persists the authenticated flag for one device or browser.
type FlagStore interface {
	Authenticated(ctx context.Context) (bool, error)
	SetAuthenticated(ctx context.Context, v bool) error
}

// Changed is broadcast after a login or logout.
type Changed struct {
	Authenticated bool
}

// MemoryFlagStore is a process-local FlagStore.
type MemoryFlagStore struct {
	mu   sync.RWMutex
	flag bool
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{}
}

func (s *MemoryFlagStore) Authenticated(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flag, nil
}

func (s *MemoryFlagStore) SetAuthenticated(_ context.Context, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flag = v
	return nil
}
