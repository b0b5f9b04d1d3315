// Package memstore implements the taskstore port as an in-process map
// guarded by a single mutex.
package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poforge/poforge/internal/domain"
	"github.com/poforge/poforge/internal/port/a2a"
)

type entry struct {
	task     *a2a.Task
	storedAt time.Time
}

// Store is a concurrency-safe in-memory task store. Records are copied on
// the way in and out, so callers never share state with the store.
//
// The store optionally evicts records older than a TTL, measured from their
// last write. A TTL of zero disables eviction and the store grows for the
// lifetime of the process.
type Store struct {
	mu    sync.Mutex
	tasks map[string]entry

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the record time-to-live and the sweep interval.
func WithTTL(ttl, sweepInterval time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
		s.sweepInterval = sweepInterval
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		tasks:         make(map[string]entry),
		sweepInterval: time.Minute,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put inserts or overwrites the task by ID. Idempotent.
func (s *Store) Put(_ context.Context, task *a2a.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = entry{task: task.Clone(), storedAt: s.now()}
	return nil
}

// Get returns a copy of the task with the given ID, or an error wrapping
// domain.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return e.task.Clone(), nil
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Run sweeps expired records until ctx is cancelled. It returns immediately
// when no TTL is configured.
func (s *Store) Run(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				slog.Debug("task store sweep", "evicted", n)
			}
		}
	}
}

// sweep removes expired records and returns how many were evicted.
func (s *Store) sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.tasks {
		if e.storedAt.Before(cutoff) {
			delete(s.tasks, id)
			n++
		}
	}
	return n
}
