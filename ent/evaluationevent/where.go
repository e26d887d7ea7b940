// Code generated by ent, DO NOT EDIT.

package evaluationevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/linguiz/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldTimestamp, v))
}

// RequestID applies equality check predicate on the "request_id" field. It's identical to RequestIDEQ.
func RequestID(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldRequestID, v))
}

// SentenceID applies equality check predicate on the "sentence_id" field. It's identical to SentenceIDEQ.
func SentenceID(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldSentenceID, v))
}

// AttemptNumber applies equality check predicate on the "attempt_number" field. It's identical to AttemptNumberEQ.
func AttemptNumber(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldAttemptNumber, v))
}

// HintsUsed applies equality check predicate on the "hints_used" field. It's identical to HintsUsedEQ.
func HintsUsed(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldHintsUsed, v))
}

// ElapsedMs applies equality check predicate on the "elapsed_ms" field. It's identical to ElapsedMsEQ.
func ElapsedMs(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldElapsedMs, v))
}

// Tier applies equality check predicate on the "tier" field. It's identical to TierEQ.
func Tier(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldTier, v))
}

// BaseScore applies equality check predicate on the "base_score" field. It's identical to BaseScoreEQ.
func BaseScore(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldBaseScore, v))
}

// FinalScore applies equality check predicate on the "final_score" field. It's identical to FinalScoreEQ.
func FinalScore(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldFinalScore, v))
}

// Confidence applies equality check predicate on the "confidence" field. It's identical to ConfidenceEQ.
func Confidence(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldConfidence, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldTimestamp, v))
}

// RequestIDEQ applies the EQ predicate on the "request_id" field.
func RequestIDEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldRequestID, v))
}

// RequestIDNEQ applies the NEQ predicate on the "request_id" field.
func RequestIDNEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldRequestID, v))
}

// RequestIDIn applies the In predicate on the "request_id" field.
func RequestIDIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldRequestID, vs...))
}

// RequestIDNotIn applies the NotIn predicate on the "request_id" field.
func RequestIDNotIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldRequestID, vs...))
}

// RequestIDGT applies the GT predicate on the "request_id" field.
func RequestIDGT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldRequestID, v))
}

// RequestIDGTE applies the GTE predicate on the "request_id" field.
func RequestIDGTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldRequestID, v))
}

// RequestIDLT applies the LT predicate on the "request_id" field.
func RequestIDLT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldRequestID, v))
}

// RequestIDLTE applies the LTE predicate on the "request_id" field.
func RequestIDLTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldRequestID, v))
}

// RequestIDContains applies the Contains predicate on the "request_id" field.
func RequestIDContains(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContains(FieldRequestID, v))
}

// RequestIDHasPrefix applies the HasPrefix predicate on the "request_id" field.
func RequestIDHasPrefix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasPrefix(FieldRequestID, v))
}

// RequestIDHasSuffix applies the HasSuffix predicate on the "request_id" field.
func RequestIDHasSuffix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasSuffix(FieldRequestID, v))
}

// RequestIDEqualFold applies the EqualFold predicate on the "request_id" field.
func RequestIDEqualFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEqualFold(FieldRequestID, v))
}

// RequestIDContainsFold applies the ContainsFold predicate on the "request_id" field.
func RequestIDContainsFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContainsFold(FieldRequestID, v))
}

// SentenceIDEQ applies the EQ predicate on the "sentence_id" field.
func SentenceIDEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldSentenceID, v))
}

// SentenceIDNEQ applies the NEQ predicate on the "sentence_id" field.
func SentenceIDNEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldSentenceID, v))
}

// SentenceIDIn applies the In predicate on the "sentence_id" field.
func SentenceIDIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldSentenceID, vs...))
}

// SentenceIDNotIn applies the NotIn predicate on the "sentence_id" field.
func SentenceIDNotIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldSentenceID, vs...))
}

// SentenceIDGT applies the GT predicate on the "sentence_id" field.
func SentenceIDGT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldSentenceID, v))
}

// SentenceIDGTE applies the GTE predicate on the "sentence_id" field.
func SentenceIDGTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldSentenceID, v))
}

// SentenceIDLT applies the LT predicate on the "sentence_id" field.
func SentenceIDLT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldSentenceID, v))
}

// SentenceIDLTE applies the LTE predicate on the "sentence_id" field.
func SentenceIDLTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldSentenceID, v))
}

// SentenceIDContains applies the Contains predicate on the "sentence_id" field.
func SentenceIDContains(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContains(FieldSentenceID, v))
}

// SentenceIDHasPrefix applies the HasPrefix predicate on the "sentence_id" field.
func SentenceIDHasPrefix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasPrefix(FieldSentenceID, v))
}

// SentenceIDHasSuffix applies the HasSuffix predicate on the "sentence_id" field.
func SentenceIDHasSuffix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasSuffix(FieldSentenceID, v))
}

// SentenceIDEqualFold applies the EqualFold predicate on the "sentence_id" field.
func SentenceIDEqualFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEqualFold(FieldSentenceID, v))
}

// SentenceIDContainsFold applies the ContainsFold predicate on the "sentence_id" field.
func SentenceIDContainsFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContainsFold(FieldSentenceID, v))
}

// AttemptNumberEQ applies the EQ predicate on the "attempt_number" field.
func AttemptNumberEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldAttemptNumber, v))
}

// AttemptNumberNEQ applies the NEQ predicate on the "attempt_number" field.
func AttemptNumberNEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldAttemptNumber, v))
}

// AttemptNumberIn applies the In predicate on the "attempt_number" field.
func AttemptNumberIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldAttemptNumber, vs...))
}

// AttemptNumberNotIn applies the NotIn predicate on the "attempt_number" field.
func AttemptNumberNotIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldAttemptNumber, vs...))
}

// AttemptNumberGT applies the GT predicate on the "attempt_number" field.
func AttemptNumberGT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldAttemptNumber, v))
}

// AttemptNumberGTE applies the GTE predicate on the "attempt_number" field.
func AttemptNumberGTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldAttemptNumber, v))
}

// AttemptNumberLT applies the LT predicate on the "attempt_number" field.
func AttemptNumberLT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldAttemptNumber, v))
}

// AttemptNumberLTE applies the LTE predicate on the "attempt_number" field.
func AttemptNumberLTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldAttemptNumber, v))
}

// HintsUsedEQ applies the EQ predicate on the "hints_used" field.
func HintsUsedEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldHintsUsed, v))
}

// HintsUsedNEQ applies the NEQ predicate on the "hints_used" field.
func HintsUsedNEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldHintsUsed, v))
}

// HintsUsedIn applies the In predicate on the "hints_used" field.
func HintsUsedIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldHintsUsed, vs...))
}

// HintsUsedNotIn applies the NotIn predicate on the "hints_used" field.
func HintsUsedNotIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldHintsUsed, vs...))
}

// HintsUsedGT applies the GT predicate on the "hints_used" field.
func HintsUsedGT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldHintsUsed, v))
}

// HintsUsedGTE applies the GTE predicate on the "hints_used" field.
func HintsUsedGTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldHintsUsed, v))
}

// HintsUsedLT applies the LT predicate on the "hints_used" field.
func HintsUsedLT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldHintsUsed, v))
}

// HintsUsedLTE applies the LTE predicate on the "hints_used" field.
func HintsUsedLTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldHintsUsed, v))
}

// ElapsedMsEQ applies the EQ predicate on the "elapsed_ms" field.
func ElapsedMsEQ(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldElapsedMs, v))
}

// ElapsedMsNEQ applies the NEQ predicate on the "elapsed_ms" field.
func ElapsedMsNEQ(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldElapsedMs, v))
}

// ElapsedMsIn applies the In predicate on the "elapsed_ms" field.
func ElapsedMsIn(vs ...int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldElapsedMs, vs...))
}

// ElapsedMsNotIn applies the NotIn predicate on the "elapsed_ms" field.
func ElapsedMsNotIn(vs ...int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldElapsedMs, vs...))
}

// ElapsedMsGT applies the GT predicate on the "elapsed_ms" field.
func ElapsedMsGT(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldElapsedMs, v))
}

// ElapsedMsGTE applies the GTE predicate on the "elapsed_ms" field.
func ElapsedMsGTE(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldElapsedMs, v))
}

// ElapsedMsLT applies the LT predicate on the "elapsed_ms" field.
func ElapsedMsLT(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldElapsedMs, v))
}

// ElapsedMsLTE applies the LTE predicate on the "elapsed_ms" field.
func ElapsedMsLTE(v int64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldElapsedMs, v))
}

// TierEQ applies the EQ predicate on the "tier" field.
func TierEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldTier, v))
}

// TierNEQ applies the NEQ predicate on the "tier" field.
func TierNEQ(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldTier, v))
}

// TierIn applies the In predicate on the "tier" field.
func TierIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldTier, vs...))
}

// TierNotIn applies the NotIn predicate on the "tier" field.
func TierNotIn(vs ...string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldTier, vs...))
}

// TierGT applies the GT predicate on the "tier" field.
func TierGT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldTier, v))
}

// TierGTE applies the GTE predicate on the "tier" field.
func TierGTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldTier, v))
}

// TierLT applies the LT predicate on the "tier" field.
func TierLT(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldTier, v))
}

// TierLTE applies the LTE predicate on the "tier" field.
func TierLTE(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldTier, v))
}

// TierContains applies the Contains predicate on the "tier" field.
func TierContains(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContains(FieldTier, v))
}

// TierHasPrefix applies the HasPrefix predicate on the "tier" field.
func TierHasPrefix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasPrefix(FieldTier, v))
}

// TierHasSuffix applies the HasSuffix predicate on the "tier" field.
func TierHasSuffix(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldHasSuffix(FieldTier, v))
}

// TierEqualFold applies the EqualFold predicate on the "tier" field.
func TierEqualFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEqualFold(FieldTier, v))
}

// TierContainsFold applies the ContainsFold predicate on the "tier" field.
func TierContainsFold(v string) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldContainsFold(FieldTier, v))
}

// BaseScoreEQ applies the EQ predicate on the "base_score" field.
func BaseScoreEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldBaseScore, v))
}

// BaseScoreNEQ applies the NEQ predicate on the "base_score" field.
func BaseScoreNEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldBaseScore, v))
}

// BaseScoreIn applies the In predicate on the "base_score" field.
func BaseScoreIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldBaseScore, vs...))
}

// BaseScoreNotIn applies the NotIn predicate on the "base_score" field.
func BaseScoreNotIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldBaseScore, vs...))
}

// BaseScoreGT applies the GT predicate on the "base_score" field.
func BaseScoreGT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldBaseScore, v))
}

// BaseScoreGTE applies the GTE predicate on the "base_score" field.
func BaseScoreGTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldBaseScore, v))
}

// BaseScoreLT applies the LT predicate on the "base_score" field.
func BaseScoreLT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldBaseScore, v))
}

// BaseScoreLTE applies the LTE predicate on the "base_score" field.
func BaseScoreLTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldBaseScore, v))
}

// FinalScoreEQ applies the EQ predicate on the "final_score" field.
func FinalScoreEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldFinalScore, v))
}

// FinalScoreNEQ applies the NEQ predicate on the "final_score" field.
func FinalScoreNEQ(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldFinalScore, v))
}

// FinalScoreIn applies the In predicate on the "final_score" field.
func FinalScoreIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldFinalScore, vs...))
}

// FinalScoreNotIn applies the NotIn predicate on the "final_score" field.
func FinalScoreNotIn(vs ...int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldFinalScore, vs...))
}

// FinalScoreGT applies the GT predicate on the "final_score" field.
func FinalScoreGT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldFinalScore, v))
}

// FinalScoreGTE applies the GTE predicate on the "final_score" field.
func FinalScoreGTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldFinalScore, v))
}

// FinalScoreLT applies the LT predicate on the "final_score" field.
func FinalScoreLT(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldFinalScore, v))
}

// FinalScoreLTE applies the LTE predicate on the "final_score" field.
func FinalScoreLTE(v int) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldFinalScore, v))
}

// ConfidenceEQ applies the EQ predicate on the "confidence" field.
func ConfidenceEQ(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldEQ(FieldConfidence, v))
}

// ConfidenceNEQ applies the NEQ predicate on the "confidence" field.
func ConfidenceNEQ(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNEQ(FieldConfidence, v))
}

// ConfidenceIn applies the In predicate on the "confidence" field.
func ConfidenceIn(vs ...float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldIn(FieldConfidence, vs...))
}

// ConfidenceNotIn applies the NotIn predicate on the "confidence" field.
func ConfidenceNotIn(vs ...float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldNotIn(FieldConfidence, vs...))
}

// ConfidenceGT applies the GT predicate on the "confidence" field.
func ConfidenceGT(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGT(FieldConfidence, v))
}

// ConfidenceGTE applies the GTE predicate on the "confidence" field.
func ConfidenceGTE(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldGTE(FieldConfidence, v))
}

// ConfidenceLT applies the LT predicate on the "confidence" field.
func ConfidenceLT(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLT(FieldConfidence, v))
}

// ConfidenceLTE applies the LTE predicate on the "confidence" field.
func ConfidenceLTE(v float64) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.FieldLTE(FieldConfidence, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.EvaluationEvent) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.EvaluationEvent) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.EvaluationEvent) predicate.EvaluationEvent {
	return predicate.EvaluationEvent(sql.NotPredicates(p))
}
