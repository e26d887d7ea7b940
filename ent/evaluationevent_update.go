// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/linguiz/ent/evaluationevent"
	"github.com/abhisek/linguiz/ent/predicate"
)

// EvaluationEventUpdate is the builder for updating EvaluationEvent entities.
type EvaluationEventUpdate struct {
	config
	hooks    []Hook
	mutation *EvaluationEventMutation
}

// Where appends a list predicates to the EvaluationEventUpdate builder.
func (_u *EvaluationEventUpdate) Where(ps ...predicate.EvaluationEvent) *EvaluationEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetRequestID sets the "request_id" field.
func (_u *EvaluationEventUpdate) SetRequestID(v string) *EvaluationEventUpdate {
	_u.mutation.SetRequestID(v)
	return _u
}

// SetNillableRequestID sets the "request_id" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableRequestID(v *string) *EvaluationEventUpdate {
	if v != nil {
		_u.SetRequestID(*v)
	}
	return _u
}

// SetSentenceID sets the "sentence_id" field.
func (_u *EvaluationEventUpdate) SetSentenceID(v string) *EvaluationEventUpdate {
	_u.mutation.SetSentenceID(v)
	return _u
}

// SetNillableSentenceID sets the "sentence_id" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableSentenceID(v *string) *EvaluationEventUpdate {
	if v != nil {
		_u.SetSentenceID(*v)
	}
	return _u
}

// SetAttemptNumber sets the "attempt_number" field.
func (_u *EvaluationEventUpdate) SetAttemptNumber(v int) *EvaluationEventUpdate {
	_u.mutation.ResetAttemptNumber()
	_u.mutation.SetAttemptNumber(v)
	return _u
}

// SetNillableAttemptNumber sets the "attempt_number" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableAttemptNumber(v *int) *EvaluationEventUpdate {
	if v != nil {
		_u.SetAttemptNumber(*v)
	}
	return _u
}

// AddAttemptNumber adds value to the "attempt_number" field.
func (_u *EvaluationEventUpdate) AddAttemptNumber(v int) *EvaluationEventUpdate {
	_u.mutation.AddAttemptNumber(v)
	return _u
}

// SetHintsUsed sets the "hints_used" field.
func (_u *EvaluationEventUpdate) SetHintsUsed(v int) *EvaluationEventUpdate {
	_u.mutation.ResetHintsUsed()
	_u.mutation.SetHintsUsed(v)
	return _u
}

// SetNillableHintsUsed sets the "hints_used" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableHintsUsed(v *int) *EvaluationEventUpdate {
	if v != nil {
		_u.SetHintsUsed(*v)
	}
	return _u
}

// AddHintsUsed adds value to the "hints_used" field.
func (_u *EvaluationEventUpdate) AddHintsUsed(v int) *EvaluationEventUpdate {
	_u.mutation.AddHintsUsed(v)
	return _u
}

// SetElapsedMs sets the "elapsed_ms" field.
func (_u *EvaluationEventUpdate) SetElapsedMs(v int64) *EvaluationEventUpdate {
	_u.mutation.ResetElapsedMs()
	_u.mutation.SetElapsedMs(v)
	return _u
}

// SetNillableElapsedMs sets the "elapsed_ms" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableElapsedMs(v *int64) *EvaluationEventUpdate {
	if v != nil {
		_u.SetElapsedMs(*v)
	}
	return _u
}

// AddElapsedMs adds value to the "elapsed_ms" field.
func (_u *EvaluationEventUpdate) AddElapsedMs(v int64) *EvaluationEventUpdate {
	_u.mutation.AddElapsedMs(v)
	return _u
}

// SetTier sets the "tier" field.
func (_u *EvaluationEventUpdate) SetTier(v string) *EvaluationEventUpdate {
	_u.mutation.SetTier(v)
	return _u
}

// SetNillableTier sets the "tier" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableTier(v *string) *EvaluationEventUpdate {
	if v != nil {
		_u.SetTier(*v)
	}
	return _u
}

// SetBaseScore sets the "base_score" field.
func (_u *EvaluationEventUpdate) SetBaseScore(v int) *EvaluationEventUpdate {
	_u.mutation.ResetBaseScore()
	_u.mutation.SetBaseScore(v)
	return _u
}

// SetNillableBaseScore sets the "base_score" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableBaseScore(v *int) *EvaluationEventUpdate {
	if v != nil {
		_u.SetBaseScore(*v)
	}
	return _u
}

// AddBaseScore adds value to the "base_score" field.
func (_u *EvaluationEventUpdate) AddBaseScore(v int) *EvaluationEventUpdate {
	_u.mutation.AddBaseScore(v)
	return _u
}

// SetFinalScore sets the "final_score" field.
func (_u *EvaluationEventUpdate) SetFinalScore(v int) *EvaluationEventUpdate {
	_u.mutation.ResetFinalScore()
	_u.mutation.SetFinalScore(v)
	return _u
}

// SetNillableFinalScore sets the "final_score" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableFinalScore(v *int) *EvaluationEventUpdate {
	if v != nil {
		_u.SetFinalScore(*v)
	}
	return _u
}

// AddFinalScore adds value to the "final_score" field.
func (_u *EvaluationEventUpdate) AddFinalScore(v int) *EvaluationEventUpdate {
	_u.mutation.AddFinalScore(v)
	return _u
}

// SetConfidence sets the "confidence" field.
func (_u *EvaluationEventUpdate) SetConfidence(v float64) *EvaluationEventUpdate {
	_u.mutation.ResetConfidence()
	_u.mutation.SetConfidence(v)
	return _u
}

// SetNillableConfidence sets the "confidence" field if the given value is not nil.
func (_u *EvaluationEventUpdate) SetNillableConfidence(v *float64) *EvaluationEventUpdate {
	if v != nil {
		_u.SetConfidence(*v)
	}
	return _u
}

// AddConfidence adds value to the "confidence" field.
func (_u *EvaluationEventUpdate) AddConfidence(v float64) *EvaluationEventUpdate {
	_u.mutation.AddConfidence(v)
	return _u
}

// Mutation returns the EvaluationEventMutation object of the builder.
func (_u *EvaluationEventUpdate) Mutation() *EvaluationEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *EvaluationEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *EvaluationEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *EvaluationEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *EvaluationEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *EvaluationEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(evaluationevent.Table, evaluationevent.Columns, sqlgraph.NewFieldSpec(evaluationevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.RequestID(); ok {
		_spec.SetField(evaluationevent.FieldRequestID, field.TypeString, value)
	}
	if value, ok := _u.mutation.SentenceID(); ok {
		_spec.SetField(evaluationevent.FieldSentenceID, field.TypeString, value)
	}
	if value, ok := _u.mutation.AttemptNumber(); ok {
		_spec.SetField(evaluationevent.FieldAttemptNumber, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedAttemptNumber(); ok {
		_spec.AddField(evaluationevent.FieldAttemptNumber, field.TypeInt, value)
	}
	if value, ok := _u.mutation.HintsUsed(); ok {
		_spec.SetField(evaluationevent.FieldHintsUsed, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedHintsUsed(); ok {
		_spec.AddField(evaluationevent.FieldHintsUsed, field.TypeInt, value)
	}
	if value, ok := _u.mutation.ElapsedMs(); ok {
		_spec.SetField(evaluationevent.FieldElapsedMs, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.AddedElapsedMs(); ok {
		_spec.AddField(evaluationevent.FieldElapsedMs, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.Tier(); ok {
		_spec.SetField(evaluationevent.FieldTier, field.TypeString, value)
	}
	if value, ok := _u.mutation.BaseScore(); ok {
		_spec.SetField(evaluationevent.FieldBaseScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedBaseScore(); ok {
		_spec.AddField(evaluationevent.FieldBaseScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.FinalScore(); ok {
		_spec.SetField(evaluationevent.FieldFinalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedFinalScore(); ok {
		_spec.AddField(evaluationevent.FieldFinalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Confidence(); ok {
		_spec.SetField(evaluationevent.FieldConfidence, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedConfidence(); ok {
		_spec.AddField(evaluationevent.FieldConfidence, field.TypeFloat64, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{evaluationevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// EvaluationEventUpdateOne is the builder for updating a single EvaluationEvent entity.
type EvaluationEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *EvaluationEventMutation
}

// SetRequestID sets the "request_id" field.
func (_u *EvaluationEventUpdateOne) SetRequestID(v string) *EvaluationEventUpdateOne {
	_u.mutation.SetRequestID(v)
	return _u
}

// SetNillableRequestID sets the "request_id" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableRequestID(v *string) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetRequestID(*v)
	}
	return _u
}

// SetSentenceID sets the "sentence_id" field.
func (_u *EvaluationEventUpdateOne) SetSentenceID(v string) *EvaluationEventUpdateOne {
	_u.mutation.SetSentenceID(v)
	return _u
}

// SetNillableSentenceID sets the "sentence_id" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableSentenceID(v *string) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetSentenceID(*v)
	}
	return _u
}

// SetAttemptNumber sets the "attempt_number" field.
func (_u *EvaluationEventUpdateOne) SetAttemptNumber(v int) *EvaluationEventUpdateOne {
	_u.mutation.ResetAttemptNumber()
	_u.mutation.SetAttemptNumber(v)
	return _u
}

// SetNillableAttemptNumber sets the "attempt_number" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableAttemptNumber(v *int) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetAttemptNumber(*v)
	}
	return _u
}

// AddAttemptNumber adds value to the "attempt_number" field.
func (_u *EvaluationEventUpdateOne) AddAttemptNumber(v int) *EvaluationEventUpdateOne {
	_u.mutation.AddAttemptNumber(v)
	return _u
}

// SetHintsUsed sets the "hints_used" field.
func (_u *EvaluationEventUpdateOne) SetHintsUsed(v int) *EvaluationEventUpdateOne {
	_u.mutation.ResetHintsUsed()
	_u.mutation.SetHintsUsed(v)
	return _u
}

// SetNillableHintsUsed sets the "hints_used" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableHintsUsed(v *int) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetHintsUsed(*v)
	}
	return _u
}

// AddHintsUsed adds value to the "hints_used" field.
func (_u *EvaluationEventUpdateOne) AddHintsUsed(v int) *EvaluationEventUpdateOne {
	_u.mutation.AddHintsUsed(v)
	return _u
}

// SetElapsedMs sets the "elapsed_ms" field.
func (_u *EvaluationEventUpdateOne) SetElapsedMs(v int64) *EvaluationEventUpdateOne {
	_u.mutation.ResetElapsedMs()
	_u.mutation.SetElapsedMs(v)
	return _u
}

// SetNillableElapsedMs sets the "elapsed_ms" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableElapsedMs(v *int64) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetElapsedMs(*v)
	}
	return _u
}

// AddElapsedMs adds value to the "elapsed_ms" field.
func (_u *EvaluationEventUpdateOne) AddElapsedMs(v int64) *EvaluationEventUpdateOne {
	_u.mutation.AddElapsedMs(v)
	return _u
}

// SetTier sets the "tier" field.
func (_u *EvaluationEventUpdateOne) SetTier(v string) *EvaluationEventUpdateOne {
	_u.mutation.SetTier(v)
	return _u
}

// SetNillableTier sets the "tier" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableTier(v *string) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetTier(*v)
	}
	return _u
}

// SetBaseScore sets the "base_score" field.
func (_u *EvaluationEventUpdateOne) SetBaseScore(v int) *EvaluationEventUpdateOne {
	_u.mutation.ResetBaseScore()
	_u.mutation.SetBaseScore(v)
	return _u
}

// SetNillableBaseScore sets the "base_score" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableBaseScore(v *int) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetBaseScore(*v)
	}
	return _u
}

// AddBaseScore adds value to the "base_score" field.
func (_u *EvaluationEventUpdateOne) AddBaseScore(v int) *EvaluationEventUpdateOne {
	_u.mutation.AddBaseScore(v)
	return _u
}

// SetFinalScore sets the "final_score" field.
func (_u *EvaluationEventUpdateOne) SetFinalScore(v int) *EvaluationEventUpdateOne {
	_u.mutation.ResetFinalScore()
	_u.mutation.SetFinalScore(v)
	return _u
}

// SetNillableFinalScore sets the "final_score" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableFinalScore(v *int) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetFinalScore(*v)
	}
	return _u
}

// AddFinalScore adds value to the "final_score" field.
func (_u *EvaluationEventUpdateOne) AddFinalScore(v int) *EvaluationEventUpdateOne {
	_u.mutation.AddFinalScore(v)
	return _u
}

// SetConfidence sets the "confidence" field.
func (_u *EvaluationEventUpdateOne) SetConfidence(v float64) *EvaluationEventUpdateOne {
	_u.mutation.ResetConfidence()
	_u.mutation.SetConfidence(v)
	return _u
}

// SetNillableConfidence sets the "confidence" field if the given value is not nil.
func (_u *EvaluationEventUpdateOne) SetNillableConfidence(v *float64) *EvaluationEventUpdateOne {
	if v != nil {
		_u.SetConfidence(*v)
	}
	return _u
}

// AddConfidence adds value to the "confidence" field.
func (_u *EvaluationEventUpdateOne) AddConfidence(v float64) *EvaluationEventUpdateOne {
	_u.mutation.AddConfidence(v)
	return _u
}

// Mutation returns the EvaluationEventMutation object of the builder.
func (_u *EvaluationEventUpdateOne) Mutation() *EvaluationEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the EvaluationEventUpdate builder.
func (_u *EvaluationEventUpdateOne) Where(ps ...predicate.EvaluationEvent) *EvaluationEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *EvaluationEventUpdateOne) Select(field string, fields ...string) *EvaluationEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated EvaluationEvent entity.
func (_u *EvaluationEventUpdateOne) Save(ctx context.Context) (*EvaluationEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *EvaluationEventUpdateOne) SaveX(ctx context.Context) *EvaluationEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *EvaluationEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *EvaluationEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *EvaluationEventUpdateOne) sqlSave(ctx context.Context) (_node *EvaluationEvent, err error) {
	_spec := sqlgraph.NewUpdateSpec(evaluationevent.Table, evaluationevent.Columns, sqlgraph.NewFieldSpec(evaluationevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "EvaluationEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, evaluationevent.FieldID)
		for _, f := range fields {
			if !evaluationevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != evaluationevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.RequestID(); ok {
		_spec.SetField(evaluationevent.FieldRequestID, field.TypeString, value)
	}
	if value, ok := _u.mutation.SentenceID(); ok {
		_spec.SetField(evaluationevent.FieldSentenceID, field.TypeString, value)
	}
	if value, ok := _u.mutation.AttemptNumber(); ok {
		_spec.SetField(evaluationevent.FieldAttemptNumber, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedAttemptNumber(); ok {
		_spec.AddField(evaluationevent.FieldAttemptNumber, field.TypeInt, value)
	}
	if value, ok := _u.mutation.HintsUsed(); ok {
		_spec.SetField(evaluationevent.FieldHintsUsed, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedHintsUsed(); ok {
		_spec.AddField(evaluationevent.FieldHintsUsed, field.TypeInt, value)
	}
	if value, ok := _u.mutation.ElapsedMs(); ok {
		_spec.SetField(evaluationevent.FieldElapsedMs, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.AddedElapsedMs(); ok {
		_spec.AddField(evaluationevent.FieldElapsedMs, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.Tier(); ok {
		_spec.SetField(evaluationevent.FieldTier, field.TypeString, value)
	}
	if value, ok := _u.mutation.BaseScore(); ok {
		_spec.SetField(evaluationevent.FieldBaseScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedBaseScore(); ok {
		_spec.AddField(evaluationevent.FieldBaseScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.FinalScore(); ok {
		_spec.SetField(evaluationevent.FieldFinalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedFinalScore(); ok {
		_spec.AddField(evaluationevent.FieldFinalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Confidence(); ok {
		_spec.SetField(evaluationevent.FieldConfidence, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedConfidence(); ok {
		_spec.AddField(evaluationevent.FieldConfidence, field.TypeFloat64, value)
	}
	_node = &EvaluationEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{evaluationevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
