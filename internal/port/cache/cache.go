// Package cache defines the port interface for key-value caching.
package cache

import (
	"context"
	"time"
)

// Cache is an in-process key-value cache with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
