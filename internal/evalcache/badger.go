package evalcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// keySep separates the sentence ID from the submission inside a badger key.
// Unit separator cannot appear in normalized text.
const keySep = "\x1f"

const keyPrefix = "eval" + keySep

// BadgerConfig configures the persistent cache store.
type BadgerConfig struct {
	// Path is the directory for the BadgerDB files. Ignored when InMemory.
	Path string

	// InMemory runs badger without disk persistence. Used in tests.
	InMemory bool

	// SyncWrites trades write latency for durability.
	SyncWrites bool

	// TTL is applied to every entry via badger's native expiration.
	TTL time.Duration

	// Logger receives badger's internal log output. Nil disables it.
	Logger *slog.Logger

	// GCInterval is how often to run value-log garbage collection.
	// Zero disables the GC loop.
	GCInterval time.Duration
}

// DefaultBadgerConfig returns production defaults: durable writes,
// 7-day TTL, 5-minute GC.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:       path,
		SyncWrites: true,
		TTL:        7 * 24 * time.Hour,
		GCInterval: 5 * time.Minute,
	}
}

// InMemoryBadgerConfig returns a config for tests: no disk, no sync, no GC.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{
		InMemory: true,
		TTL:      7 * 24 * time.Hour,
	}
}

// BadgerStore is a Store backed by BadgerDB. Entry lifetime is enforced by
// badger's per-key TTL, so expired entries disappear without a sweep of our
// own.
type BadgerStore struct {
	db     *badger.DB
	cfg    BadgerConfig
	stopGC chan struct{}
	gcDone sync.WaitGroup
}

// OpenBadger opens (creating if needed) the cache database.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger cache path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	s := &BadgerStore{db: db, cfg: cfg, stopGC: make(chan struct{})}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.gcDone.Add(1)
		go s.gcLoop()
	}
	return s, nil
}

func (s *BadgerStore) Get(_ context.Context, sentenceID, submission string) (*Entry, error) {
	key := entryKey(sentenceID, submission)
	var e *Entry

	// Read-modify-write for the hit counter. Last-write-wins on conflict
	// is fine: both sides saw an equivalent entry.
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var decoded Entry
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &decoded)
		}); err != nil {
			return fmt.Errorf("decode cache entry: %w", err)
		}

		decoded.Hits++
		e = &decoded
		return s.setLocked(txn, key, &decoded, item.ExpiresAt())
	})
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return e, nil
}

func (s *BadgerStore) Put(_ context.Context, e *Entry) error {
	stored := cloneEntry(e)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	key := entryKey(e.SentenceID, e.Submission)
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.setLocked(txn, key, stored, 0)
	})
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// setLocked writes an encoded entry inside txn. When expiresAt is non-zero
// the remaining lifetime is preserved (hit-count updates must not extend
// the TTL); otherwise a fresh TTL is applied.
func (s *BadgerStore) setLocked(txn *badger.Txn, key []byte, e *Entry, expiresAt uint64) error {
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	be := badger.NewEntry(key, val)
	if expiresAt > 0 {
		remaining := time.Until(time.Unix(int64(expiresAt), 0))
		if remaining <= 0 {
			// Already expired; let badger drop it.
			return txn.Delete(key)
		}
		be = be.WithTTL(remaining)
	} else if s.cfg.TTL > 0 {
		be = be.WithTTL(s.cfg.TTL)
	}
	return txn.SetEntry(be)
}

func (s *BadgerStore) Entries(_ context.Context, sentenceID string) ([]*Entry, error) {
	prefix := []byte(keyPrefix + sentenceID + keySep)
	var out []*Entry

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode cache entry: %w", err)
			}
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache scan: %w", err)
	}
	return out, nil
}

func (s *BadgerStore) Delete(_ context.Context, sentenceID, submission string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(entryKey(sentenceID, submission))
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	close(s.stopGC)
	s.gcDone.Wait()
	return s.db.Close()
}

func (s *BadgerStore) gcLoop() {
	defer s.gcDone.Done()
	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// Rerun until badger reports nothing left to collect.
			for s.db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}

func entryKey(sentenceID, submission string) []byte {
	return []byte(keyPrefix + sentenceID + keySep + submission)
}

// badgerLogger adapts slog to badger's logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
