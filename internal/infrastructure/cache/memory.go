package cache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

// MemorySessionStore keeps console session inputs in process memory
type MemorySessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewMemorySessionStore creates a new in-process session store
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		items: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// Save stores the session state and refreshes its expiry
func (s *MemorySessionStore) Save(_ context.Context, state repositories.SessionState) error {
	s.items.Set(state.ID, state, s.ttl)
	return nil
}

// Load returns the stored session state, or nil when it expired or never existed
func (s *MemorySessionStore) Load(_ context.Context, id string) (*repositories.SessionState, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, nil
	}
	state := v.(repositories.SessionState)
	return &state, nil
}

// Delete removes the session state
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.items.Delete(id)
	return nil
}

// HealthCheck always succeeds for the in-process store
func (s *MemorySessionStore) HealthCheck(context.Context) error {
	return nil
}
