package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

var _ domain.KeyValueStore = (*InMemoryStore)(nil)

// InMemoryStore keeps values in a map. A positive capacity bounds the total
// number of stored bytes, mirroring a browser-style storage quota.
type InMemoryStore struct {
	store    map[string][]byte
	capacity int
	used     int

	mu sync.RWMutex
}

func NewInMemoryStore(capacity int) *InMemoryStore {
	return &InMemoryStore{
		store:    make(map[string][]byte),
		capacity: capacity,
	}
}

func (s *InMemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.store[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *InMemoryStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used - len(s.store[key]) + len(value)
	if s.capacity > 0 && used > s.capacity {
		return domain.ErrStorageFull
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.store[key] = stored
	s.used = used
	return nil
}
