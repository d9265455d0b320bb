// Package memory provides an in-memory run store for testing and
// lightweight deployments. Runs are lost when the process restarts.
// Optional LRU eviction limits memory usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/skoenig/rubric/pkg/classify"
	"github.com/skoenig/rubric/pkg/storage"
)

// entry holds a stored run and its eviction bookkeeping.
type entry struct {
	run     *classify.Run
	lruElem *list.Element
}

// Store is an in-memory run store with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	lruList *list.List // front = most recently used
	maxSize int        // 0 = unlimited
}

// Ensure Store implements classify.RunStore at compile time.
var _ classify.RunStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the least recently used run is evicted
// when the limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[uuid.UUID]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveRun persists a run in memory.
func (s *Store) SaveRun(_ context.Context, run *classify.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[run.ID]; exists {
		return storage.ErrConflict
	}

	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(run.ID)
	s.entries[run.ID] = &entry{run: run, lruElem: elem}

	return nil
}

// GetRun retrieves a run by ID. Returns ErrNotFound if it does not exist.
func (s *Store) GetRun(_ context.Context, id uuid.UUID) (*classify.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	s.lruList.MoveToFront(e.lruElem)
	return e.run, nil
}

// ListRuns returns up to limit runs, newest first by start time. A limit
// of zero or less returns all runs.
func (s *Store) ListRuns(_ context.Context, limit int) ([]*classify.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*classify.Run, 0, len(s.entries))
	for _, e := range s.entries {
		runs = append(runs, e.run)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID.String() > runs[j].ID.String()
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// DeleteRun removes a run. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteRun(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return storage.ErrNotFound
	}

	s.lruList.Remove(e.lruElem)
	delete(s.entries, id)
	return nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(uuid.UUID)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
