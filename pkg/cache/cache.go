// Package cache stores JSON-encoded values under string keys with a TTL.
//
// Callers treat the cache as best effort: a miss and a backend failure look
// the same to Get, and Set/Del errors are logged rather than returned to the
// client.
package cache

import (
	"context"
	"time"
)

// Store is implemented by Redis, Memory and Noop.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Noop never stores anything. Used when Redis is not configured or not
// reachable at startup.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) bool { return false }

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) Del(context.Context, ...string) error { return nil }
