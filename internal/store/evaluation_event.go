package store

import (
	"context"
	"fmt"

	"github.com/abhisek/linguiz/ent"
	"github.com/abhisek/linguiz/ent/evaluationevent"
)

func (r *eventRepo) AppendEvaluation(ctx context.Context, data EvaluationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.EvaluationEvent.Create().
		SetSequence(seqNum).
		SetRequestID(data.RequestID).
		SetSentenceID(data.SentenceID).
		SetAttemptNumber(data.AttemptNumber).
		SetHintsUsed(data.HintsUsed).
		SetElapsedMs(data.ElapsedMs).
		SetTier(data.Tier).
		SetBaseScore(data.BaseScore).
		SetFinalScore(data.FinalScore).
		SetConfidence(data.Confidence).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save evaluation event: %w", err)
	}

	return nil
}

func (r *eventRepo) EvaluationsByTier(ctx context.Context) ([]TierUsage, error) {
	var rows []struct {
		Tier          string  `json:"tier"`
		Count         int     `json:"count"`
		AvgFinalScore float64 `json:"avg_final_score"`
	}

	err := r.client.EvaluationEvent.Query().
		GroupBy(evaluationevent.FieldTier).
		Aggregate(
			ent.As(ent.Count(), "count"),
			ent.As(ent.Mean(evaluationevent.FieldFinalScore), "avg_final_score"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate evaluations by tier: %w", err)
	}

	out := make([]TierUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, TierUsage{
			Tier:          row.Tier,
			Count:         row.Count,
			AvgFinalScore: row.AvgFinalScore,
		})
	}
	return out, nil
}

func (r *eventRepo) QueryEvaluations(ctx context.Context, opts QueryOpts) ([]*EvaluationEvent, error) {
	q := r.client.EvaluationEvent.Query().
		Order(ent.Desc(evaluationevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query evaluation events: %w", err)
	}

	out := make([]*EvaluationEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, &EvaluationEvent{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: row.Timestamp,
			EvaluationEventData: EvaluationEventData{
				RequestID:     row.RequestID,
				SentenceID:    row.SentenceID,
				AttemptNumber: row.AttemptNumber,
				HintsUsed:     row.HintsUsed,
				ElapsedMs:     row.ElapsedMs,
				Tier:          row.Tier,
				BaseScore:     row.BaseScore,
				FinalScore:    row.FinalScore,
				Confidence:    row.Confidence,
			},
		})
	}
	return out, nil
}
