package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/llm"
	"github.com/abhisek/linguiz/internal/patterns"
	"github.com/abhisek/linguiz/internal/sentence"
	"github.com/abhisek/linguiz/internal/similarity"
	"github.com/abhisek/linguiz/internal/store"
)

func testCatalog(t *testing.T) *sentence.Catalog {
	t.Helper()
	c := sentence.NewCatalog()
	err := c.Add(&sentence.Sentence{
		ID:         "s1",
		SourceText: "La casa es roja",
		References: []string{"the house is red"},
		Difficulty: "a1",
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return c
}

func aiPayload(score int) json.RawMessage {
	return json.RawMessage(`{"score":` + jsonInt(score) + `,"feedback":"well done","sub_scores":{"grammar":90,"vocabulary":90,"naturalness":85,"completeness":95},"issues":[]}`)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func newTestOrchestrator(t *testing.T, opts Options) (*Orchestrator, evalcache.Store) {
	t.Helper()
	if opts.Sentences == nil {
		opts.Sentences = testCatalog(t)
	}
	if opts.Cache == nil {
		opts.Cache = evalcache.NewMemoryStore(evalcache.DefaultConfig())
	}
	orch, err := New(opts)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return orch, opts.Cache
}

func TestEvaluate_RejectsEmptySubmission(t *testing.T) {
	orch, _ := newTestOrchestrator(t, Options{})

	_, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "   ",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Field != "text" {
		t.Errorf("field = %q, want text", verr.Field)
	}
}

func TestEvaluate_RejectsUnknownSentence(t *testing.T) {
	orch, _ := newTestOrchestrator(t, Options{})

	_, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "nope",
		Text:       "the house is red",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Field != "sentence_id" {
		t.Errorf("field = %q, want sentence_id", verr.Field)
	}
}

func TestEvaluate_AIThenExactCacheHit(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: aiPayload(90)},
	)
	orch, _ := newTestOrchestrator(t, Options{
		Evaluator: NewAIEvaluator(mock, DefaultAIConfig()),
	})
	ctx := context.Background()
	req := evaluation.Request{SentenceID: "s1", Text: "The house is red."}

	first, err := orch.EvaluateTranslation(ctx, req)
	if err != nil {
		t.Fatalf("first evaluation: %v", err)
	}
	if first.Tier != evaluation.TierAI {
		t.Fatalf("first tier = %s, want ai", first.Tier)
	}
	if first.Score != 90 {
		t.Fatalf("first score = %d, want 90", first.Score)
	}

	// Same submission again: served from the exact tier, no second AI call.
	second, err := orch.EvaluateTranslation(ctx, req)
	if err != nil {
		t.Fatalf("second evaluation: %v", err)
	}
	if second.Tier != evaluation.TierExact {
		t.Fatalf("second tier = %s, want exact", second.Tier)
	}
	if second.Score != first.Score {
		t.Errorf("cached score = %d, want %d", second.Score, first.Score)
	}
	if second.Confidence != 1.0 {
		t.Errorf("exact-tier confidence = %v, want 1.0", second.Confidence)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 AI call, got %d", mock.CallCount())
	}
}

func TestEvaluate_HintPenaltyAppliedAfterRetrieval(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: aiPayload(90)},
	)
	orch, _ := newTestOrchestrator(t, Options{
		Evaluator:  NewAIEvaluator(mock, DefaultAIConfig()),
		MaxPenalty: 30,
	})
	ctx := context.Background()

	res, err := orch.EvaluateTranslation(ctx, evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
		HintsUsed:  2,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.BaseScore != 90 {
		t.Errorf("base score = %d, want 90", res.BaseScore)
	}
	// Two hints at -5 each.
	if res.Score != 80 {
		t.Errorf("final score = %d, want 80", res.Score)
	}
	if res.Grade != evaluation.GradeGood {
		t.Errorf("grade = %s, want good", res.Grade)
	}

	// The cache holds the unpenalized judgment: a later attempt with no
	// hints gets the full base score back.
	clean, err := orch.EvaluateTranslation(ctx, evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
	})
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if clean.Tier != evaluation.TierExact {
		t.Fatalf("tier = %s, want exact", clean.Tier)
	}
	if clean.Score != 90 {
		t.Errorf("unpenalized score = %d, want 90", clean.Score)
	}
}

func TestEvaluate_SimilarityTier(t *testing.T) {
	cache := evalcache.NewMemoryStore(evalcache.DefaultConfig())
	err := cache.Put(context.Background(), &evalcache.Entry{
		SentenceID: "s1",
		Submission: "the house is red",
		Result: evaluation.Result{
			Score:      95,
			BaseScore:  95,
			Grade:      evaluation.GradeExcellent,
			Feedback:   "great",
			Tier:       evaluation.TierAI,
			Confidence: 1.0,
		},
	})
	if err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	orch, _ := newTestOrchestrator(t, Options{
		Cache:   cache,
		Matcher: similarity.New(cache, similarity.DefaultConfig()),
	})

	// Strict form differs (accent), loose form matches exactly.
	res, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "The house is réd",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Tier != evaluation.TierSimilarity {
		t.Fatalf("tier = %s, want similarity", res.Tier)
	}
	if res.Score != 95 {
		t.Errorf("score = %d, want 95", res.Score)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want the match score 1.0", res.Confidence)
	}
}

func TestEvaluate_TemplateTier(t *testing.T) {
	library := patterns.NewLibrary()
	err := library.Add("s1", patterns.Template{
		Pattern:  "the house is rod",
		Score:    45,
		Feedback: "Check the color word: rojo means red.",
		Issues:   []evaluation.Issue{{Kind: evaluation.IssueVocabulary, Detail: "rod is not a color"}},
	})
	if err != nil {
		t.Fatalf("add template: %v", err)
	}

	mock := llm.NewMockProvider()
	orch, _ := newTestOrchestrator(t, Options{
		Templates: library,
		Evaluator: NewAIEvaluator(mock, DefaultAIConfig()),
	})

	res, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "The house is rod!",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Tier != evaluation.TierTemplate {
		t.Fatalf("tier = %s, want template", res.Tier)
	}
	if res.Score != 45 {
		t.Errorf("score = %d, want 45", res.Score)
	}
	if res.Confidence != 0.75 {
		t.Errorf("confidence = %v, want the default 0.75", res.Confidence)
	}
	if len(res.Issues) != 1 || res.Issues[0].Kind != evaluation.IssueVocabulary {
		t.Errorf("unexpected issues: %+v", res.Issues)
	}
	// Template hit must short-circuit the AI tier.
	if mock.CallCount() != 0 {
		t.Errorf("expected 0 AI calls, got %d", mock.CallCount())
	}
}

func TestEvaluate_FallbackWhenAIFails(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	orch, cache := newTestOrchestrator(t, Options{
		Evaluator: NewAIEvaluator(mock, DefaultAIConfig()),
	})

	res, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Tier != evaluation.TierFallback {
		t.Fatalf("tier = %s, want fallback", res.Tier)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", res.Confidence)
	}
	// Exact match against the reference scores full marks even heuristically.
	if res.Score != 100 {
		t.Errorf("score = %d, want 100", res.Score)
	}

	// Fallback results are never persisted.
	entries, err := cache.Entries(context.Background(), "s1")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("fallback result was persisted: %d entries", len(entries))
	}
}

func TestEvaluate_FallbackWithoutEvaluator(t *testing.T) {
	orch, _ := newTestOrchestrator(t, Options{})

	res, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "the horse is read",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Tier != evaluation.TierFallback {
		t.Fatalf("tier = %s, want fallback", res.Tier)
	}
	if res.Score >= 100 {
		t.Errorf("score = %d, want partial credit below 100", res.Score)
	}
	if res.Feedback == "" {
		t.Error("fallback feedback should explain the provisional score")
	}
}

// gatedProvider blocks Generate until released, so tests can abandon the
// caller context mid-call.
type gatedProvider struct {
	release chan struct{}
	done    chan struct{}
	content json.RawMessage
}

func (g *gatedProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	<-g.release
	defer close(g.done)
	return &llm.Response{Content: g.content, Model: "gated"}, nil
}

func (g *gatedProvider) ModelID() string { return "gated" }

func TestEvaluate_CancelledCallerStillPopulatesCache(t *testing.T) {
	provider := &gatedProvider{
		release: make(chan struct{}),
		done:    make(chan struct{}),
		content: aiPayload(88),
	}
	cfg := DefaultAIConfig()
	cfg.Timeout = 0 // the gate controls timing here
	orch, cache := newTestOrchestrator(t, Options{
		Evaluator: NewAIEvaluator(provider, cfg),
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := orch.EvaluateTranslation(ctx, evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}

	// Let the in-flight evaluation finish and verify it was cached anyway.
	close(provider.release)
	<-provider.done

	deadline := time.Now().Add(2 * time.Second)
	for {
		entry, err := cache.Get(context.Background(), "s1", "the house is red")
		if err != nil {
			t.Fatalf("cache get: %v", err)
		}
		if entry != nil {
			if entry.Result.BaseScore != 88 {
				t.Errorf("cached base score = %d, want 88", entry.Result.BaseScore)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("abandoned evaluation never reached the cache")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// fakeEventRepo captures appended evaluation events.
type fakeEventRepo struct {
	mu     sync.Mutex
	events []store.EvaluationEventData
}

func (f *fakeEventRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}

func (f *fakeEventRepo) AppendEvaluation(_ context.Context, data store.EvaluationEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]*store.LLMRequestEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) QueryEvaluations(context.Context, store.QueryOpts) ([]*store.EvaluationEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func (f *fakeEventRepo) EvaluationsByTier(context.Context) ([]store.TierUsage, error) {
	return nil, nil
}

func TestEvaluate_RecordsEvaluationEvent(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: aiPayload(90)},
	)
	events := &fakeEventRepo{}
	orch, _ := newTestOrchestrator(t, Options{
		Evaluator:  NewAIEvaluator(mock, DefaultAIConfig()),
		Events:     events,
		MaxPenalty: 30,
	})

	_, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
		HintsUsed:  1,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	events.mu.Lock()
	defer events.mu.Unlock()
	if len(events.events) != 1 {
		t.Fatalf("got %d events, want 1", len(events.events))
	}
	e := events.events[0]
	if e.RequestID == "" {
		t.Error("request ID not assigned")
	}
	if e.Tier != "ai" || e.BaseScore != 90 || e.FinalScore != 85 || e.HintsUsed != 1 {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestEvaluate_MaxPenaltyCapped(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: aiPayload(100)},
	)
	orch, _ := newTestOrchestrator(t, Options{
		Evaluator:  NewAIEvaluator(mock, DefaultAIConfig()),
		MaxPenalty: 30,
	})

	// Ten hints would deduct far beyond the cap.
	res, err := orch.EvaluateTranslation(context.Background(), evaluation.Request{
		SentenceID: "s1",
		Text:       "the house is red",
		HintsUsed:  10,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Score != 70 {
		t.Errorf("score = %d, want 70 (cap at -30)", res.Score)
	}
}
