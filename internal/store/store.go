package store

import (
	"context"

	"github.com/alfredjeanlab/intake/internal/model"
)

// Store defines the persistence interface for consumption events.
// Implementations return copies; callers may freely mutate what they get back.
type Store interface {
	// UpsertEvent inserts the event, or fully replaces the stored event with
	// the same ID.
	UpsertEvent(ctx context.Context, event *model.Event) error

	// ScanEvents returns events matching filter, ascending by timestamp.
	ScanEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)

	// RunInTransaction calls fn with a Store whose writes become visible only
	// if fn returns nil. Any error discards every write made through tx.
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Close releases resources held by the store.
	Close() error
}
