package service

import (
	"context"
	"fmt"
	"sync"

	"crux/internal/modules/identity/domain"
	identityout "crux/internal/modules/identity/port/out"
)

// IdentityService owns the signed-in user. Writes go through the store first,
// reads are served from the cached copy.
type IdentityService struct {
	store identityout.KeyValueStore

	mu      sync.RWMutex
	current domain.Context
	loaded  bool
}

func NewIdentityService(store identityout.KeyValueStore) *IdentityService {
	return &IdentityService{store: store}
}

func (s *IdentityService) Load(ctx context.Context) (domain.Context, error) {
	s.mu.RLock()
	if s.loaded {
		current := s.current
		s.mu.RUnlock()
		return current, nil
	}
	s.mu.RUnlock()

	values, err := s.store.Load(ctx, domain.Keys())
	if err != nil {
		return domain.Context{}, fmt.Errorf("load identity: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = domain.FromValues(values)
		s.loaded = true
	}
	return s.current, nil
}

func (s *IdentityService) Replace(ctx context.Context, next domain.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, next.Values()); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	s.current = next
	s.loaded = true
	return nil
}

func (s *IdentityService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, domain.Keys()); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	s.current = domain.Context{}
	s.loaded = true
	return nil
}

// Token returns the cached bearer token, or "" before Load or after Clear.
func (s *IdentityService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}
