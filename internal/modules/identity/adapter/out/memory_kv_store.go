package out

import (
	"context"
	"sync"

	identityout "crux/internal/modules/identity/port/out"
)

// MemoryKeyValueStore keeps identity in process memory only.
type MemoryKeyValueStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ identityout.KeyValueStore = (*MemoryKeyValueStore)(nil)

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: map[string]string{}}
}

func (s *MemoryKeyValueStore) Load(_ context.Context, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := s.values[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (s *MemoryKeyValueStore) Save(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range values {
		if value == "" {
			delete(s.values, key)
			continue
		}
		s.values[key] = value
	}
	return nil
}

func (s *MemoryKeyValueStore) Delete(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
