package evalcache

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/linguiz/internal/evaluation"
)

func testEntry(sentenceID, submission string, score int) *Entry {
	return &Entry{
		SentenceID: sentenceID,
		Submission: submission,
		Result: evaluation.Result{
			Score:      score,
			BaseScore:  score,
			Grade:      evaluation.GradeFor(score),
			Feedback:   "good",
			Tier:       evaluation.TierAI,
			Confidence: 1.0,
		},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore(DefaultConfig())
	ctx := context.Background()

	if err := s.Put(ctx, testEntry("42", "bebo café todas las mañanas", 90)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "42", "bebo café todas las mañanas")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected hit, got miss")
	}
	if got.Result.BaseScore != 90 {
		t.Errorf("base score = %d, want 90", got.Result.BaseScore)
	}
	if got.Hits != 1 {
		t.Errorf("hits = %d, want 1", got.Hits)
	}

	// Second lookup bumps the counter.
	got, _ = s.Get(ctx, "42", "bebo café todas las mañanas")
	if got.Hits != 2 {
		t.Errorf("hits = %d, want 2", got.Hits)
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore(DefaultConfig())
	got, err := s.Get(context.Background(), "42", "nothing here")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatal("expected miss")
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	s := NewMemoryStore(Config{TTL: time.Hour})
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, testEntry("42", "hola", 80)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Fresh entry hits.
	if got, _ := s.Get(ctx, "42", "hola"); got == nil {
		t.Fatal("expected hit before expiry")
	}

	// Past the TTL it is a miss and also excluded from the candidate scan.
	now = now.Add(2 * time.Hour)
	if got, _ := s.Get(ctx, "42", "hola"); got != nil {
		t.Fatal("expected miss after expiry")
	}
	candidates, _ := s.Entries(ctx, "42")
	if len(candidates) != 0 {
		t.Errorf("expired entry still in candidate scan: %d", len(candidates))
	}
}

func TestMemoryStoreLRUEviction(t *testing.T) {
	s := NewMemoryStore(Config{Capacity: 2})
	ctx := context.Background()

	s.Put(ctx, testEntry("1", "a", 50))
	s.Put(ctx, testEntry("1", "b", 60))

	// Touch "a" so "b" is the LRU victim.
	s.Get(ctx, "1", "a")
	s.Put(ctx, testEntry("1", "c", 70))

	if got, _ := s.Get(ctx, "1", "b"); got != nil {
		t.Error("expected LRU victim to be evicted")
	}
	if got, _ := s.Get(ctx, "1", "a"); got == nil {
		t.Error("recently used entry should survive")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestMemoryStoreSentenceIsolation(t *testing.T) {
	s := NewMemoryStore(DefaultConfig())
	ctx := context.Background()

	s.Put(ctx, testEntry("A", "same text", 90))
	s.Put(ctx, testEntry("B", "same text", 40))

	forA, _ := s.Entries(ctx, "A")
	if len(forA) != 1 || forA[0].Result.BaseScore != 90 {
		t.Errorf("candidate scan for A leaked entries: %+v", forA)
	}
}

func TestMemoryStoreReturnsClones(t *testing.T) {
	s := NewMemoryStore(DefaultConfig())
	ctx := context.Background()

	s.Put(ctx, testEntry("1", "a", 50))
	got, _ := s.Get(ctx, "1", "a")
	got.Result.Score = 0
	got.Result.Feedback = "mutated"

	again, _ := s.Get(ctx, "1", "a")
	if again.Result.Score != 50 || again.Result.Feedback != "good" {
		t.Error("stored entry was mutated through a returned copy")
	}
}

func TestMemoryStorePutReplacesWholeRecord(t *testing.T) {
	s := NewMemoryStore(DefaultConfig())
	ctx := context.Background()

	s.Put(ctx, testEntry("1", "a", 50))
	s.Put(ctx, testEntry("1", "a", 70))

	got, _ := s.Get(ctx, "1", "a")
	if got.Result.BaseScore != 70 {
		t.Errorf("base score = %d, want 70 after replace", got.Result.BaseScore)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}
