package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
)

type memoryEntry struct {
	pending Pending
	evictAt time.Time
}

// MemoryStore keeps pending actions in process. Entries are kept until
// their TTL passes and are swept on every Save.
type MemoryStore struct {
	clock clock.Clock

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{clock: clk, entries: map[string]memoryEntry{}}
}

func (s *MemoryStore) Save(ctx context.Context, p Pending, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	for token, e := range s.entries {
		if !now.Before(e.evictAt) {
			delete(s.entries, token)
		}
	}
	s.entries[p.Token] = memoryEntry{pending: p, evictAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return Pending{}, ErrConfirmationNotFound
	}
	return e.pending, nil
}

func (s *MemoryStore) Take(ctx context.Context, token string) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return Pending{}, ErrConfirmationNotFound
	}
	delete(s.entries, token)
	return e.pending, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
