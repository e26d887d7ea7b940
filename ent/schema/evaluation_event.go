package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EvaluationEvent records one translation evaluation: which tier answered,
// the unpenalized and final scores, and how the learner got there.
type EvaluationEvent struct {
	ent.Schema
}

func (EvaluationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (EvaluationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("request_id").
			Comment("Unique ID of the evaluation attempt"),
		field.String("sentence_id").
			Comment("Sentence the submission was evaluated against"),
		field.Int("attempt_number").
			Default(0).
			Comment("How many attempts the learner has made on this sentence"),
		field.Int("hints_used").
			Default(0).
			Comment("Hints consumed before submitting"),
		field.Int64("elapsed_ms").
			Default(0).
			Comment("Time the learner spent before submitting"),
		field.String("tier").
			Comment("Tier that produced the result: exact, similarity, template, ai, fallback"),
		field.Int("base_score").
			Comment("Unpenalized 0-100 score from the producing tier"),
		field.Int("final_score").
			Comment("Score after hint penalties"),
		field.Float("confidence").
			Comment("How directly the result reflects a genuine semantic judgment"),
	}
}

func (EvaluationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sentence_id"),
		index.Fields("tier"),
	}
}
