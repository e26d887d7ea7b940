package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// LLMRequestEventData captures one LLM API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM call event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EvaluationEventData captures one completed translation evaluation.
type EvaluationEventData struct {
	RequestID     string
	SentenceID    string
	AttemptNumber int
	HintsUsed     int
	ElapsedMs     int64
	Tier          string
	BaseScore     int
	FinalScore    int
	Confidence    float64
}

// EvaluationEvent is a stored evaluation event.
type EvaluationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	EvaluationEventData
}

// LLMPurposeUsage aggregates LLM calls by purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM calls by model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// TierUsage aggregates evaluations by resolution tier.
type TierUsage struct {
	Tier          string
	Count         int
	AvgFinalScore float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendEvaluation records a completed evaluation.
	AppendEvaluation(ctx context.Context, data EvaluationEventData) error

	// QueryLLMEvents returns recent LLM call events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*LLMRequestEvent, error)

	// QueryEvaluations returns recent evaluation events, newest first.
	QueryEvaluations(ctx context.Context, opts QueryOpts) ([]*EvaluationEvent, error)

	// LLMUsageByPurpose returns token usage aggregated by call purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel returns token usage aggregated by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// EvaluationsByTier returns evaluation counts aggregated by tier.
	EvaluationsByTier(ctx context.Context) ([]TierUsage, error)
}
