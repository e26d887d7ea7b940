// Package evalcache is the exact-match evaluation cache: a key-value store
// of prior judgments keyed by (sentence ID, normalized submission).
//
// Two implementations are provided. MemoryStore is a bounded LRU map for
// tests and single-process use; BadgerStore persists entries in BadgerDB
// with native TTL expiration. Both treat entries as whole records — a Put
// replaces the entry atomically, and concurrent Puts of the same key are
// last-write-wins, which is safe because both writes encode equivalent
// judgments for the same normalized submission.
package evalcache

import (
	"context"
	"time"

	"github.com/abhisek/linguiz/internal/evaluation"
)

// Entry is one cached judgment plus its bookkeeping. The stored result is
// always the unpenalized base judgment; hint penalties are applied by the
// orchestrator after retrieval.
type Entry struct {
	SentenceID string            `json:"sentence_id"`
	Submission string            `json:"submission"` // strict normalized form
	Result     evaluation.Result `json:"result"`
	CreatedAt  time.Time         `json:"created_at"`
	Hits       int64             `json:"hits"`
}

// Store is the cache contract shared by all backends.
//
// Lookups return (nil, nil) on a miss — a miss is normal control flow, not
// an error. Entries past their TTL are treated as misses; lazy expiration
// is sufficient, backends may sweep eagerly as an optimization.
type Store interface {
	// Get returns the live entry for the key, incrementing its hit
	// counter, or (nil, nil) when absent or expired.
	Get(ctx context.Context, sentenceID, submission string) (*Entry, error)

	// Put stores an entry, replacing any existing record for the key.
	Put(ctx context.Context, e *Entry) error

	// Entries returns all live entries for a sentence. This is the
	// candidate set for the similarity matcher; it never crosses
	// sentence IDs.
	Entries(ctx context.Context, sentenceID string) ([]*Entry, error)

	// Delete removes the entry for the key if present.
	Delete(ctx context.Context, sentenceID, submission string) error

	Close() error
}

// Config holds the knobs shared by cache backends.
type Config struct {
	// TTL bounds the lifetime of an entry. Zero disables expiration.
	TTL time.Duration

	// Capacity bounds the number of entries held by the memory store
	// (least-recently-used eviction past the bound). Zero means unbounded.
	// Ignored by the badger store, which is disk-backed.
	Capacity int
}

// DefaultConfig matches the documented defaults: 7-day TTL, 10k entries.
func DefaultConfig() Config {
	return Config{
		TTL:      7 * 24 * time.Hour,
		Capacity: 10_000,
	}
}

// expired reports whether an entry created at t is past its TTL at now.
func expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(createdAt) > ttl
}
