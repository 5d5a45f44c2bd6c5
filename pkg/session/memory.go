package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps session state in process memory with TTL eviction.
// This is the default store for single-instance deployments.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore builds a store that evicts sessions idle longer than ttl,
// sweeping expired entries every sweep interval.
func NewMemoryStore(ttl, sweep time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, sweep)}
}

func (s *MemoryStore) Get(id string) (*State, bool) {
	if x, found := s.cache.Get(id); found {
		return x.(*State), true
	}
	return nil, false
}

func (s *MemoryStore) Save(state *State) {
	s.cache.Set(state.ID, state, cache.DefaultExpiration)
}

func (s *MemoryStore) Delete(id string) {
	s.cache.Delete(id)
}
