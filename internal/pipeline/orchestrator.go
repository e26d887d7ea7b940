// Package pipeline sequences the evaluation tiers for one submission:
// exact-match cache, similarity matcher, error templates, and finally the
// AI evaluator, first hit wins. It applies hint penalties after a tier
// produces a base result and writes fresh AI judgments back into the cache
// for future reuse.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/patterns"
	"github.com/abhisek/linguiz/internal/sentence"
	"github.com/abhisek/linguiz/internal/similarity"
	"github.com/abhisek/linguiz/internal/store"
	"github.com/abhisek/linguiz/internal/textnorm"
)

// Orchestrator runs the tier chain. Construct one at process start with
// explicit dependencies — the cache store is shared across all concurrent
// evaluations, never a hidden singleton.
type Orchestrator struct {
	sentences  sentence.Repo
	cache      evalcache.Store
	matcher    *similarity.Matcher
	templates  *patterns.Library
	ai         *AIEvaluator
	events     store.EventRepo
	penalties  evaluation.PenaltyTable
	maxPenalty int
	logger     *slog.Logger
}

// Options wires an Orchestrator. Sentences and Cache are required;
// Matcher, Templates, Evaluator, and Events may be nil, in which case the
// corresponding tier (or event logging) is skipped. With a nil Evaluator
// every full miss goes straight to the heuristic fallback.
type Options struct {
	Sentences  sentence.Repo
	Cache      evalcache.Store
	Matcher    *similarity.Matcher
	Templates  *patterns.Library
	Evaluator  *AIEvaluator
	Events     store.EventRepo
	Penalties  evaluation.PenaltyTable
	MaxPenalty int
	Logger     *slog.Logger
}

// New creates an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Sentences == nil {
		return nil, fmt.Errorf("sentence repo is required")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	penalties := opts.Penalties
	if penalties == nil {
		penalties = evaluation.DefaultPenaltyTable()
	}
	return &Orchestrator{
		sentences:  opts.Sentences,
		cache:      opts.Cache,
		matcher:    opts.Matcher,
		templates:  opts.Templates,
		ai:         opts.Evaluator,
		events:     opts.Events,
		penalties:  penalties,
		maxPenalty: opts.MaxPenalty,
		logger:     logger,
	}, nil
}

// EvaluateTranslation evaluates one submission. Tiers are tried in strict
// order and the first hit short-circuits the rest; only a true miss on
// exact, similarity, and template triggers the AI call.
//
// The caller always receives a result or a *ValidationError. AI and store
// failures degrade internally: reads fall through to the next tier, writes
// warn and continue, and an AI failure yields the heuristic fallback.
func (o *Orchestrator) EvaluateTranslation(ctx context.Context, req evaluation.Request) (*evaluation.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "empty submission"}
	}
	s, err := o.sentences.Get(ctx, req.SentenceID)
	if err != nil {
		if errors.Is(err, sentence.ErrNotFound) {
			return nil, &ValidationError{Field: "sentence_id", Reason: fmt.Sprintf("unknown sentence %q", req.SentenceID)}
		}
		return nil, fmt.Errorf("look up sentence: %w", err)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	key := textnorm.Normalize(req.Text)

	// Tier 1: exact match. Store errors degrade to a miss.
	entry, err := o.cache.Get(ctx, req.SentenceID, key)
	if err != nil {
		o.logger.Warn("cache read failed, treating as miss", "sentence", req.SentenceID, "error", err)
	}
	if entry != nil {
		res := entry.Result.Clone()
		res.Tier = evaluation.TierExact
		res.Confidence = 1.0
		return o.deliver(ctx, req, res), nil
	}

	// Tier 2: similarity against cached judgments for this sentence.
	if o.matcher != nil {
		match, err := o.matcher.FindSimilar(ctx, req.SentenceID, key)
		if err != nil {
			o.logger.Warn("similarity scan failed, treating as miss", "sentence", req.SentenceID, "error", err)
		}
		if match != nil {
			res := match.Entry.Result.Clone()
			res.Tier = evaluation.TierSimilarity
			res.Confidence = match.Score
			return o.deliver(ctx, req, res), nil
		}
	}

	// Tier 3: known-wrong templates.
	if o.templates != nil {
		if res := o.templates.Match(req.SentenceID, key); res != nil {
			return o.deliver(ctx, req, res), nil
		}
	}

	// Tier 4: AI evaluation.
	if o.ai == nil {
		return o.deliver(ctx, req, heuristicResult(s, key)), nil
	}
	return o.evaluateWithAI(ctx, req, s, key)
}

type aiOutcome struct {
	res *evaluation.Result
	err error
}

// evaluateWithAI runs the AI call detached from caller cancellation: if the
// caller abandons the request mid-flight, the evaluation still completes
// and populates the cache, but the result is not delivered.
func (o *Orchestrator) evaluateWithAI(ctx context.Context, req evaluation.Request, s *sentence.Sentence, key string) (*evaluation.Result, error) {
	done := make(chan aiOutcome, 1)
	aictx := context.WithoutCancel(ctx)

	go func() {
		res, err := o.ai.Evaluate(aictx, s, key)
		if err == nil {
			o.persist(aictx, req.SentenceID, key, res)
		}
		done <- aiOutcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			o.logger.Warn("AI tier failed, using heuristic fallback", "sentence", req.SentenceID, "error", out.err)
			return o.deliver(ctx, req, heuristicResult(s, key)), nil
		}
		return o.deliver(ctx, req, out.res), nil
	}
}

// persist writes a fresh AI judgment into the exact-match cache, always
// unpenalized. Similarity and template hits are derived from existing cache
// state and are not re-persisted; fallback results never reach here.
func (o *Orchestrator) persist(ctx context.Context, sentenceID, key string, res *evaluation.Result) {
	err := o.cache.Put(ctx, &evalcache.Entry{
		SentenceID: sentenceID,
		Submission: key,
		Result:     *res.Clone(),
	})
	if err != nil {
		o.logger.Warn("cache write failed, result not persisted", "sentence", sentenceID, "error", err)
	}
}

// deliver applies the hint penalty to the base judgment and records the
// evaluation event. Penalties are per request and never touch the cache.
func (o *Orchestrator) deliver(ctx context.Context, req evaluation.Request, res *evaluation.Result) *evaluation.Result {
	res.BaseScore = res.Score
	res.Score = o.penalties.Apply(res.BaseScore, req.HintsUsed, o.maxPenalty)
	res.Grade = evaluation.GradeFor(res.Score)

	if o.events != nil {
		err := o.events.AppendEvaluation(ctx, store.EvaluationEventData{
			RequestID:     req.ID,
			SentenceID:    req.SentenceID,
			AttemptNumber: req.AttemptNumber,
			HintsUsed:     req.HintsUsed,
			ElapsedMs:     req.ElapsedMs,
			Tier:          string(res.Tier),
			BaseScore:     res.BaseScore,
			FinalScore:    res.Score,
			Confidence:    res.Confidence,
		})
		if err != nil {
			o.logger.Warn("failed to log evaluation event", "error", err)
		}
	}
	return res
}
