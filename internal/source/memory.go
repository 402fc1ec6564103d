package source

import (
	"context"
	"sync"

	"github.com/rshade/rosterbot/internal/pager"
)

// MemorySource is an in-memory Source keyed by filter. It backs tests and
// the demo browse mode when no database is configured. Safe for concurrent
// use; the stored slices are treated as immutable snapshots.
type MemorySource struct {
	mu   sync.RWMutex
	sets map[pager.Filter][]pager.Record

	// failNext, when set, makes the next Fetch return this error once.
	failNext error
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{sets: make(map[pager.Filter][]pager.Record)}
}

// SetRecords replaces the ordered snapshot served for filter.
func (s *MemorySource) SetRecords(filter pager.Filter, records []pager.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[filter] = records
}

// FailNext arranges for the next Fetch to return err, then clears itself.
// Used to exercise the retry path.
func (s *MemorySource) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Fetch implements Source over the stored snapshot.
func (s *MemorySource) Fetch(ctx context.Context, filter pager.Filter, offset, limit int) ([]pager.Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		s.mu.Unlock()
		return nil, 0, err
	}
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.sets[filter]
	total := len(set)
	if limit == 0 || offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return set[offset:end], total, nil
}
