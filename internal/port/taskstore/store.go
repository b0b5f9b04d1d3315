// Package taskstore defines the port interface for task persistence.
package taskstore

import (
	"context"

	"github.com/poforge/poforge/internal/port/a2a"
)

// Store is a keyed registry of task records.
//
// Put inserts or overwrites by task ID and is idempotent. Get returns a copy
// of the stored record, or an error wrapping domain.ErrNotFound for unknown
// IDs; a miss is a normal outcome when callers poll, not a defect.
type Store interface {
	Put(ctx context.Context, task *a2a.Task) error
	Get(ctx context.Context, id string) (*a2a.Task, error)
}
