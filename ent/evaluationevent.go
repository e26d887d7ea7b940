// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/linguiz/ent/evaluationevent"
)

// EvaluationEvent is the model entity for the EvaluationEvent schema.
type EvaluationEvent struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Monotonically increasing global sequence number
	Sequence int64 `json:"sequence,omitempty"`
	// UTC wall-clock time of the event
	Timestamp time.Time `json:"timestamp,omitempty"`
	// Unique ID of the evaluation attempt
	RequestID string `json:"request_id,omitempty"`
	// Sentence the submission was evaluated against
	SentenceID string `json:"sentence_id,omitempty"`
	// How many attempts the learner has made on this sentence
	AttemptNumber int `json:"attempt_number,omitempty"`
	// Hints consumed before submitting
	HintsUsed int `json:"hints_used,omitempty"`
	// Time the learner spent before submitting
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
	// Tier that produced the result: exact, similarity, template, ai, fallback
	Tier string `json:"tier,omitempty"`
	// Unpenalized 0-100 score from the producing tier
	BaseScore int `json:"base_score,omitempty"`
	// Score after hint penalties
	FinalScore int `json:"final_score,omitempty"`
	// How directly the result reflects a genuine semantic judgment
	Confidence   float64 `json:"confidence,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*EvaluationEvent) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case evaluationevent.FieldConfidence:
			values[i] = new(sql.NullFloat64)
		case evaluationevent.FieldID, evaluationevent.FieldSequence, evaluationevent.FieldAttemptNumber, evaluationevent.FieldHintsUsed, evaluationevent.FieldElapsedMs, evaluationevent.FieldBaseScore, evaluationevent.FieldFinalScore:
			values[i] = new(sql.NullInt64)
		case evaluationevent.FieldRequestID, evaluationevent.FieldSentenceID, evaluationevent.FieldTier:
			values[i] = new(sql.NullString)
		case evaluationevent.FieldTimestamp:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the EvaluationEvent fields.
func (_m *EvaluationEvent) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case evaluationevent.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case evaluationevent.FieldSequence:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field sequence", values[i])
			} else if value.Valid {
				_m.Sequence = value.Int64
			}
		case evaluationevent.FieldTimestamp:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field timestamp", values[i])
			} else if value.Valid {
				_m.Timestamp = value.Time
			}
		case evaluationevent.FieldRequestID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field request_id", values[i])
			} else if value.Valid {
				_m.RequestID = value.String
			}
		case evaluationevent.FieldSentenceID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field sentence_id", values[i])
			} else if value.Valid {
				_m.SentenceID = value.String
			}
		case evaluationevent.FieldAttemptNumber:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field attempt_number", values[i])
			} else if value.Valid {
				_m.AttemptNumber = int(value.Int64)
			}
		case evaluationevent.FieldHintsUsed:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field hints_used", values[i])
			} else if value.Valid {
				_m.HintsUsed = int(value.Int64)
			}
		case evaluationevent.FieldElapsedMs:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field elapsed_ms", values[i])
			} else if value.Valid {
				_m.ElapsedMs = value.Int64
			}
		case evaluationevent.FieldTier:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field tier", values[i])
			} else if value.Valid {
				_m.Tier = value.String
			}
		case evaluationevent.FieldBaseScore:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field base_score", values[i])
			} else if value.Valid {
				_m.BaseScore = int(value.Int64)
			}
		case evaluationevent.FieldFinalScore:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field final_score", values[i])
			} else if value.Valid {
				_m.FinalScore = int(value.Int64)
			}
		case evaluationevent.FieldConfidence:
			if value, ok := values[i].(*sql.NullFloat64); !ok {
				return fmt.Errorf("unexpected type %T for field confidence", values[i])
			} else if value.Valid {
				_m.Confidence = value.Float64
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the EvaluationEvent.
// This includes values selected through modifiers, order, etc.
func (_m *EvaluationEvent) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this EvaluationEvent.
// Note that you need to call EvaluationEvent.Unwrap() before calling this method if this EvaluationEvent
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *EvaluationEvent) Update() *EvaluationEventUpdateOne {
	return NewEvaluationEventClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the EvaluationEvent entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *EvaluationEvent) Unwrap() *EvaluationEvent {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: EvaluationEvent is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *EvaluationEvent) String() string {
	var builder strings.Builder
	builder.WriteString("EvaluationEvent(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("sequence=")
	builder.WriteString(fmt.Sprintf("%v", _m.Sequence))
	builder.WriteString(", ")
	builder.WriteString("timestamp=")
	builder.WriteString(_m.Timestamp.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("request_id=")
	builder.WriteString(_m.RequestID)
	builder.WriteString(", ")
	builder.WriteString("sentence_id=")
	builder.WriteString(_m.SentenceID)
	builder.WriteString(", ")
	builder.WriteString("attempt_number=")
	builder.WriteString(fmt.Sprintf("%v", _m.AttemptNumber))
	builder.WriteString(", ")
	builder.WriteString("hints_used=")
	builder.WriteString(fmt.Sprintf("%v", _m.HintsUsed))
	builder.WriteString(", ")
	builder.WriteString("elapsed_ms=")
	builder.WriteString(fmt.Sprintf("%v", _m.ElapsedMs))
	builder.WriteString(", ")
	builder.WriteString("tier=")
	builder.WriteString(_m.Tier)
	builder.WriteString(", ")
	builder.WriteString("base_score=")
	builder.WriteString(fmt.Sprintf("%v", _m.BaseScore))
	builder.WriteString(", ")
	builder.WriteString("final_score=")
	builder.WriteString(fmt.Sprintf("%v", _m.FinalScore))
	builder.WriteString(", ")
	builder.WriteString("confidence=")
	builder.WriteString(fmt.Sprintf("%v", _m.Confidence))
	builder.WriteByte(')')
	return builder.String()
}

// EvaluationEvents is a parsable slice of EvaluationEvent.
type EvaluationEvents []*EvaluationEvent
