// Package activity keeps the admin activity feed shown on the dashboard
// overview. Mutations are published on the event bus and a subscriber
// appends them to a Store.
package activity

import (
	"context"
	"sync"

	"github.com/nfrund/writerfolio/internal/domain"
)

// Store persists activity entries.
type Store interface {
	Append(ctx context.Context, e domain.ActivityEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
	Close() error
}

// MemoryStore is a fixed-capacity ring of entries. The oldest entry is
// overwritten once the ring is full.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []domain.ActivityEntry
	next    int
	full    bool
}

// NewMemoryStore creates a ring holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{entries: make([]domain.ActivityEntry, capacity)}
}

func (s *MemoryStore) Append(_ context.Context, e domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.next] = e
	s.next = (s.next + 1) % len(s.entries)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]domain.ActivityEntry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.entries)) % len(s.entries)
		out = append(out, s.entries[idx])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
