package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// Store is the slice of the database facade this repository consumes.
type Store interface {
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Repo persists per-session chat transcripts as Redis lists of JSON entries.
// Each append refreshes the session TTL, so the transcript expires only
// after the session goes quiet for the full retention window.
type Repo struct {
	store  Store
	prefix string
	ttl    time.Duration
}

// New creates a transcript repository.
func New(store Store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: store, prefix: prefix, ttl: ttl}
}

func (r *Repo) key(sessionID string) string {
	return r.prefix + "session:" + sessionID
}

// Append adds one turn to the session transcript and refreshes its TTL.
func (r *Repo) Append(ctx context.Context, sessionID string, entry domain.TranscriptEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	key := r.key(sessionID)
	if err := r.store.RPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	if err := r.store.Expire(ctx, key, r.ttl, false); err != nil {
		return fmt.Errorf("refresh transcript ttl: %w", err)
	}
	return nil
}

// List returns the session transcript oldest-first. An unknown or expired
// session yields an empty transcript, not an error.
func (r *Repo) List(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error) {
	items, err := r.store.LRange(ctx, r.key(sessionID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	entries := make([]domain.TranscriptEntry, 0, len(items))
	for _, item := range items {
		var entry domain.TranscriptEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode transcript entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
