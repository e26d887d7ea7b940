package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndQueryEvaluationEvents(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	ctx := context.Background()

	for i, tier := range []string{"ai", "exact", "similarity"} {
		err := repo.AppendEvaluation(ctx, EvaluationEventData{
			RequestID:  "req-" + tier,
			SentenceID: "42",
			HintsUsed:  i,
			Tier:       tier,
			BaseScore:  90,
			FinalScore: 90 - 5*i,
			Confidence: 1.0,
		})
		if err != nil {
			t.Fatalf("append %s: %v", tier, err)
		}
	}

	events, err := repo.QueryEvaluations(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Tier != "similarity" {
		t.Errorf("first event tier = %q, want similarity", events[0].Tier)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequence not descending: %d then %d", events[0].Sequence, events[1].Sequence)
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	ctx := context.Background()

	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-haiku",
		Purpose:      "translation-eval",
		InputTokens:  250,
		OutputTokens: 120,
		LatencyMs:    900,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Purpose != "translation-eval" || !events[0].Success {
		t.Errorf("unexpected event: %+v", events[0])
	}
}
