package similarity

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/evaluation"
)

func seedEntry(t *testing.T, s evalcache.Store, sentenceID, submission string, score int, createdAt time.Time) {
	t.Helper()
	err := s.Put(context.Background(), &evalcache.Entry{
		SentenceID: sentenceID,
		Submission: submission,
		Result: evaluation.Result{
			Score:      score,
			BaseScore:  score,
			Grade:      evaluation.GradeFor(score),
			Feedback:   "cached judgment",
			Tier:       evaluation.TierAI,
			Confidence: 1.0,
		},
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestFindSimilarAccentSlip(t *testing.T) {
	store := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	m := New(store, DefaultConfig())

	seedEntry(t, store, "42", "bebo café todas las mañanas", 90, time.Now())

	// Accent-stripped resubmission: identical after folding.
	match, err := m.FindSimilar(context.Background(), "42", "bebo cafe todas las mananas")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match == nil {
		t.Fatal("expected a similarity hit")
	}
	if match.Score != 1.0 {
		t.Errorf("score = %v, want 1.0 for fold-identical texts", match.Score)
	}
	if match.Entry.Result.BaseScore != 90 {
		t.Errorf("base score = %d, want 90", match.Entry.Result.BaseScore)
	}
}

func TestFindSimilarMissBelowThreshold(t *testing.T) {
	store := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	m := New(store, DefaultConfig())

	seedEntry(t, store, "42", "bebo café todas las mañanas", 90, time.Now())

	match, err := m.FindSimilar(context.Background(), "42", "el gato come pescado")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match != nil {
		t.Fatalf("expected miss, got score %v", match.Score)
	}
}

func TestFindSimilarThresholdInclusive(t *testing.T) {
	store := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	seedEntry(t, store, "1", "uno dos tres cuatro", 80, time.Now())

	sub := "uno dos tres cinco"
	// Compute the actual combined score, then set the threshold exactly
	// there: the candidate must still qualify.
	score := Combined("uno dos tres cuatro", sub)
	if score >= 1.0 || score <= 0 {
		t.Fatalf("test setup: degenerate score %v", score)
	}

	at := New(store, Config{Threshold: score, EditWeight: 0.5, TokenWeight: 0.5})
	match, err := at.FindSimilar(context.Background(), "1", sub)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match == nil {
		t.Fatal("candidate exactly at threshold must qualify")
	}

	above := New(store, Config{Threshold: score + 1e-9, EditWeight: 0.5, TokenWeight: 0.5})
	match, err = above.FindSimilar(context.Background(), "1", sub)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match != nil {
		t.Fatal("candidate just below threshold must miss")
	}
}

func TestFindSimilarCrossSentenceIsolation(t *testing.T) {
	store := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	m := New(store, DefaultConfig())

	// Identical text cached under another sentence must never surface.
	seedEntry(t, store, "B", "bebo café todas las mañanas", 90, time.Now())

	match, err := m.FindSimilar(context.Background(), "A", "bebo café todas las mañanas")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match != nil {
		t.Fatal("similarity crossed sentence boundaries")
	}
}

func TestFindSimilarTieBreakNewest(t *testing.T) {
	store := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	m := New(store, DefaultConfig())

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()
	// Both fold-identical to the submission → equal scores.
	seedEntry(t, store, "42", "bebo cafe todas las mananas", 70, old)
	seedEntry(t, store, "42", "bebo café todas las mañanas", 90, fresh)

	match, err := m.FindSimilar(context.Background(), "42", "BEBO CAFE todas las mananas")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if match == nil {
		t.Fatal("expected a hit")
	}
	if match.Entry.Result.BaseScore != 90 {
		t.Errorf("tie-break picked base score %d, want the newest (90)", match.Entry.Result.BaseScore)
	}
}

func TestCombinedComponents(t *testing.T) {
	if got := Combined("hola mundo", "hola mundo"); got != 1.0 {
		t.Errorf("identical texts = %v, want 1.0", got)
	}
	if got := Combined("", ""); got != 1.0 {
		t.Errorf("empty texts = %v, want 1.0", got)
	}
	got := Combined("abc", "xyz")
	if got != 0 {
		t.Errorf("disjoint texts = %v, want 0", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"a b c", "a b c", 1},
		{"a b", "b c", 1.0 / 3.0},
		{"a", "b", 0},
		{"a a a", "a", 1}, // duplicate tokens collapse
	}
	for _, tt := range tests {
		if got := jaccard(tt.a, tt.b); got != tt.want {
			t.Errorf("jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
