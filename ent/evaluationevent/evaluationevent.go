// Code generated by ent, DO NOT EDIT.

package evaluationevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
)

const (
	// Label holds the string label denoting the evaluationevent type in the database.
	Label = "evaluation_event"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "id"
	// FieldSequence holds the string denoting the sequence field in the database.
	FieldSequence = "sequence"
	// FieldTimestamp holds the string denoting the timestamp field in the database.
	FieldTimestamp = "timestamp"
	// FieldRequestID holds the string denoting the request_id field in the database.
	FieldRequestID = "request_id"
	// FieldSentenceID holds the string denoting the sentence_id field in the database.
	FieldSentenceID = "sentence_id"
	// FieldAttemptNumber holds the string denoting the attempt_number field in the database.
	FieldAttemptNumber = "attempt_number"
	// FieldHintsUsed holds the string denoting the hints_used field in the database.
	FieldHintsUsed = "hints_used"
	// FieldElapsedMs holds the string denoting the elapsed_ms field in the database.
	FieldElapsedMs = "elapsed_ms"
	// FieldTier holds the string denoting the tier field in the database.
	FieldTier = "tier"
	// FieldBaseScore holds the string denoting the base_score field in the database.
	FieldBaseScore = "base_score"
	// FieldFinalScore holds the string denoting the final_score field in the database.
	FieldFinalScore = "final_score"
	// FieldConfidence holds the string denoting the confidence field in the database.
	FieldConfidence = "confidence"
	// Table holds the table name of the evaluationevent in the database.
	Table = "evaluation_events"
)

// Columns holds all SQL columns for evaluationevent fields.
var Columns = []string{
	FieldID,
	FieldSequence,
	FieldTimestamp,
	FieldRequestID,
	FieldSentenceID,
	FieldAttemptNumber,
	FieldHintsUsed,
	FieldElapsedMs,
	FieldTier,
	FieldBaseScore,
	FieldFinalScore,
	FieldConfidence,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// DefaultTimestamp holds the default value on creation for the "timestamp" field.
	DefaultTimestamp func() time.Time
	// DefaultAttemptNumber holds the default value on creation for the "attempt_number" field.
	DefaultAttemptNumber int
	// DefaultHintsUsed holds the default value on creation for the "hints_used" field.
	DefaultHintsUsed int
	// DefaultElapsedMs holds the default value on creation for the "elapsed_ms" field.
	DefaultElapsedMs int64
)

// OrderOption defines the ordering options for the EvaluationEvent queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// BySequence orders the results by the sequence field.
func BySequence(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSequence, opts...).ToFunc()
}

// ByTimestamp orders the results by the timestamp field.
func ByTimestamp(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTimestamp, opts...).ToFunc()
}

// ByRequestID orders the results by the request_id field.
func ByRequestID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldRequestID, opts...).ToFunc()
}

// BySentenceID orders the results by the sentence_id field.
func BySentenceID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSentenceID, opts...).ToFunc()
}

// ByAttemptNumber orders the results by the attempt_number field.
func ByAttemptNumber(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldAttemptNumber, opts...).ToFunc()
}

// ByHintsUsed orders the results by the hints_used field.
func ByHintsUsed(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldHintsUsed, opts...).ToFunc()
}

// ByElapsedMs orders the results by the elapsed_ms field.
func ByElapsedMs(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldElapsedMs, opts...).ToFunc()
}

// ByTier orders the results by the tier field.
func ByTier(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTier, opts...).ToFunc()
}

// ByBaseScore orders the results by the base_score field.
func ByBaseScore(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldBaseScore, opts...).ToFunc()
}

// ByFinalScore orders the results by the final_score field.
func ByFinalScore(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldFinalScore, opts...).ToFunc()
}

// ByConfidence orders the results by the confidence field.
func ByConfidence(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldConfidence, opts...).ToFunc()
}
