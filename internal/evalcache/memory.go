package evalcache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memKey struct {
	sentenceID string
	submission string
}

// MemoryStore is an in-process Store: a map guarded by a mutex with an LRU
// list for capacity eviction and lazy TTL expiration on read.
type MemoryStore struct {
	mu      sync.Mutex
	cfg     Config
	entries map[memKey]*list.Element
	lru     *list.List // front = most recently used; values are *Entry

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given config.
func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		cfg:     cfg,
		entries: make(map[memKey]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sentenceID, submission string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memKey{sentenceID, submission}
	el, ok := s.entries[k]
	if !ok {
		return nil, nil
	}
	e := el.Value.(*Entry)
	if expired(e.CreatedAt, s.cfg.TTL, s.now()) {
		s.removeLocked(k, el)
		return nil, nil
	}

	e.Hits++
	s.lru.MoveToFront(el)
	return cloneEntry(e), nil
}

func (s *MemoryStore) Put(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneEntry(e)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}

	k := memKey{e.SentenceID, e.Submission}
	if el, ok := s.entries[k]; ok {
		el.Value = stored
		s.lru.MoveToFront(el)
		return nil
	}

	s.entries[k] = s.lru.PushFront(stored)
	for s.cfg.Capacity > 0 && s.lru.Len() > s.cfg.Capacity {
		oldest := s.lru.Back()
		old := oldest.Value.(*Entry)
		s.removeLocked(memKey{old.SentenceID, old.Submission}, oldest)
	}
	return nil
}

func (s *MemoryStore) Entries(_ context.Context, sentenceID string) ([]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []*Entry
	for k, el := range s.entries {
		if k.sentenceID != sentenceID {
			continue
		}
		e := el.Value.(*Entry)
		if expired(e.CreatedAt, s.cfg.TTL, now) {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, sentenceID, submission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memKey{sentenceID, submission}
	if el, ok := s.entries[k]; ok {
		s.removeLocked(k, el)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the current entry count, expired entries included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

func (s *MemoryStore) removeLocked(k memKey, el *list.Element) {
	s.lru.Remove(el)
	delete(s.entries, k)
}

func cloneEntry(e *Entry) *Entry {
	out := *e
	out.Result = *e.Result.Clone()
	return &out
}
