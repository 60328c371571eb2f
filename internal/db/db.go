package db

import (
	"context"
	"time"
)

// Store is the database facade. Consumers should depend on the narrow
// sub-interfaces where possible.
type Store interface {
	Pinger
	ListStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ListStore provides list operations for append-only transcripts, plus TTL
// control over the list keys.
type ListStore interface {
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
