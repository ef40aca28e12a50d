// Package memory implements store.Store with a process-local map.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/store"
)

// MemoryStore keeps events in memory for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]*model.Event
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{events: make(map[string]*model.Event)}
}

func (m *MemoryStore) UpsertEvent(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event.Clone()
	return nil
}

func (m *MemoryStore) ScanEvents(_ context.Context, filter model.EventFilter) ([]*model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return scan(m.events, nil, filter), nil
}

// RunInTransaction stages every write made through tx and applies them under
// a single write lock once fn succeeds. On error nothing is applied.
func (m *MemoryStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx := &txStore{parent: m, staged: make(map[string]*model.Event)}
	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range tx.staged {
		m.events[id] = e
	}
	return nil
}

// Close is a no-op; the data lives only as long as the process.
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored events.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// txStore buffers writes for a MemoryStore transaction.
type txStore struct {
	parent *MemoryStore
	staged map[string]*model.Event
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) UpsertEvent(_ context.Context, event *model.Event) error {
	s.staged[event.ID] = event.Clone()
	return nil
}

// ScanEvents sees committed events overlaid with this transaction's writes.
func (s *txStore) ScanEvents(_ context.Context, filter model.EventFilter) ([]*model.Event, error) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()
	return scan(s.parent.events, s.staged, filter), nil
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent owns the data.
func (s *txStore) Close() error {
	return nil
}

// scan returns clones of the events in base, overridden by overlay, that
// match filter, ordered by timestamp then ID.
func scan(base, overlay map[string]*model.Event, filter model.EventFilter) []*model.Event {
	result := make([]*model.Event, 0)
	for id, e := range base {
		if _, shadowed := overlay[id]; shadowed {
			continue
		}
		if filter.Matches(e) {
			result = append(result, e.Clone())
		}
	}
	for _, e := range overlay {
		if filter.Matches(e) {
			result = append(result, e.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].ID < result[j].ID
	})
	return result
}
