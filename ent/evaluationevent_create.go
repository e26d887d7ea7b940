// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/linguiz/ent/evaluationevent"
)

// EvaluationEventCreate is the builder for creating a EvaluationEvent entity.
type EvaluationEventCreate struct {
	config
	mutation *EvaluationEventMutation
	hooks    []Hook
}

// SetSequence sets the "sequence" field.
func (_c *EvaluationEventCreate) SetSequence(v int64) *EvaluationEventCreate {
	_c.mutation.SetSequence(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *EvaluationEventCreate) SetTimestamp(v time.Time) *EvaluationEventCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *EvaluationEventCreate) SetNillableTimestamp(v *time.Time) *EvaluationEventCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// SetRequestID sets the "request_id" field.
func (_c *EvaluationEventCreate) SetRequestID(v string) *EvaluationEventCreate {
	_c.mutation.SetRequestID(v)
	return _c
}

// SetSentenceID sets the "sentence_id" field.
func (_c *EvaluationEventCreate) SetSentenceID(v string) *EvaluationEventCreate {
	_c.mutation.SetSentenceID(v)
	return _c
}

// SetAttemptNumber sets the "attempt_number" field.
func (_c *EvaluationEventCreate) SetAttemptNumber(v int) *EvaluationEventCreate {
	_c.mutation.SetAttemptNumber(v)
	return _c
}

// SetNillableAttemptNumber sets the "attempt_number" field if the given value is not nil.
func (_c *EvaluationEventCreate) SetNillableAttemptNumber(v *int) *EvaluationEventCreate {
	if v != nil {
		_c.SetAttemptNumber(*v)
	}
	return _c
}

// SetHintsUsed sets the "hints_used" field.
func (_c *EvaluationEventCreate) SetHintsUsed(v int) *EvaluationEventCreate {
	_c.mutation.SetHintsUsed(v)
	return _c
}

// SetNillableHintsUsed sets the "hints_used" field if the given value is not nil.
func (_c *EvaluationEventCreate) SetNillableHintsUsed(v *int) *EvaluationEventCreate {
	if v != nil {
		_c.SetHintsUsed(*v)
	}
	return _c
}

// SetElapsedMs sets the "elapsed_ms" field.
func (_c *EvaluationEventCreate) SetElapsedMs(v int64) *EvaluationEventCreate {
	_c.mutation.SetElapsedMs(v)
	return _c
}

// SetNillableElapsedMs sets the "elapsed_ms" field if the given value is not nil.
func (_c *EvaluationEventCreate) SetNillableElapsedMs(v *int64) *EvaluationEventCreate {
	if v != nil {
		_c.SetElapsedMs(*v)
	}
	return _c
}

// SetTier sets the "tier" field.
func (_c *EvaluationEventCreate) SetTier(v string) *EvaluationEventCreate {
	_c.mutation.SetTier(v)
	return _c
}

// SetBaseScore sets the "base_score" field.
func (_c *EvaluationEventCreate) SetBaseScore(v int) *EvaluationEventCreate {
	_c.mutation.SetBaseScore(v)
	return _c
}

// SetFinalScore sets the "final_score" field.
func (_c *EvaluationEventCreate) SetFinalScore(v int) *EvaluationEventCreate {
	_c.mutation.SetFinalScore(v)
	return _c
}

// SetConfidence sets the "confidence" field.
func (_c *EvaluationEventCreate) SetConfidence(v float64) *EvaluationEventCreate {
	_c.mutation.SetConfidence(v)
	return _c
}

// Mutation returns the EvaluationEventMutation object of the builder.
func (_c *EvaluationEventCreate) Mutation() *EvaluationEventMutation {
	return _c.mutation
}

// Save creates the EvaluationEvent in the database.
func (_c *EvaluationEventCreate) Save(ctx context.Context) (*EvaluationEvent, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *EvaluationEventCreate) SaveX(ctx context.Context) *EvaluationEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *EvaluationEventCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *EvaluationEventCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *EvaluationEventCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := evaluationevent.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
	if _, ok := _c.mutation.AttemptNumber(); !ok {
		v := evaluationevent.DefaultAttemptNumber
		_c.mutation.SetAttemptNumber(v)
	}
	if _, ok := _c.mutation.HintsUsed(); !ok {
		v := evaluationevent.DefaultHintsUsed
		_c.mutation.SetHintsUsed(v)
	}
	if _, ok := _c.mutation.ElapsedMs(); !ok {
		v := evaluationevent.DefaultElapsedMs
		_c.mutation.SetElapsedMs(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *EvaluationEventCreate) check() error {
	if _, ok := _c.mutation.Sequence(); !ok {
		return &ValidationError{Name: "sequence", err: errors.New(`ent: missing required field "EvaluationEvent.sequence"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "EvaluationEvent.timestamp"`)}
	}
	if _, ok := _c.mutation.RequestID(); !ok {
		return &ValidationError{Name: "request_id", err: errors.New(`ent: missing required field "EvaluationEvent.request_id"`)}
	}
	if _, ok := _c.mutation.SentenceID(); !ok {
		return &ValidationError{Name: "sentence_id", err: errors.New(`ent: missing required field "EvaluationEvent.sentence_id"`)}
	}
	if _, ok := _c.mutation.AttemptNumber(); !ok {
		return &ValidationError{Name: "attempt_number", err: errors.New(`ent: missing required field "EvaluationEvent.attempt_number"`)}
	}
	if _, ok := _c.mutation.HintsUsed(); !ok {
		return &ValidationError{Name: "hints_used", err: errors.New(`ent: missing required field "EvaluationEvent.hints_used"`)}
	}
	if _, ok := _c.mutation.ElapsedMs(); !ok {
		return &ValidationError{Name: "elapsed_ms", err: errors.New(`ent: missing required field "EvaluationEvent.elapsed_ms"`)}
	}
	if _, ok := _c.mutation.Tier(); !ok {
		return &ValidationError{Name: "tier", err: errors.New(`ent: missing required field "EvaluationEvent.tier"`)}
	}
	if _, ok := _c.mutation.BaseScore(); !ok {
		return &ValidationError{Name: "base_score", err: errors.New(`ent: missing required field "EvaluationEvent.base_score"`)}
	}
	if _, ok := _c.mutation.FinalScore(); !ok {
		return &ValidationError{Name: "final_score", err: errors.New(`ent: missing required field "EvaluationEvent.final_score"`)}
	}
	if _, ok := _c.mutation.Confidence(); !ok {
		return &ValidationError{Name: "confidence", err: errors.New(`ent: missing required field "EvaluationEvent.confidence"`)}
	}
	return nil
}

func (_c *EvaluationEventCreate) sqlSave(ctx context.Context) (*EvaluationEvent, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *EvaluationEventCreate) createSpec() (*EvaluationEvent, *sqlgraph.CreateSpec) {
	var (
		_node = &EvaluationEvent{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(evaluationevent.Table, sqlgraph.NewFieldSpec(evaluationevent.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sequence(); ok {
		_spec.SetField(evaluationevent.FieldSequence, field.TypeInt64, value)
		_node.Sequence = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(evaluationevent.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	if value, ok := _c.mutation.RequestID(); ok {
		_spec.SetField(evaluationevent.FieldRequestID, field.TypeString, value)
		_node.RequestID = value
	}
	if value, ok := _c.mutation.SentenceID(); ok {
		_spec.SetField(evaluationevent.FieldSentenceID, field.TypeString, value)
		_node.SentenceID = value
	}
	if value, ok := _c.mutation.AttemptNumber(); ok {
		_spec.SetField(evaluationevent.FieldAttemptNumber, field.TypeInt, value)
		_node.AttemptNumber = value
	}
	if value, ok := _c.mutation.HintsUsed(); ok {
		_spec.SetField(evaluationevent.FieldHintsUsed, field.TypeInt, value)
		_node.HintsUsed = value
	}
	if value, ok := _c.mutation.ElapsedMs(); ok {
		_spec.SetField(evaluationevent.FieldElapsedMs, field.TypeInt64, value)
		_node.ElapsedMs = value
	}
	if value, ok := _c.mutation.Tier(); ok {
		_spec.SetField(evaluationevent.FieldTier, field.TypeString, value)
		_node.Tier = value
	}
	if value, ok := _c.mutation.BaseScore(); ok {
		_spec.SetField(evaluationevent.FieldBaseScore, field.TypeInt, value)
		_node.BaseScore = value
	}
	if value, ok := _c.mutation.FinalScore(); ok {
		_spec.SetField(evaluationevent.FieldFinalScore, field.TypeInt, value)
		_node.FinalScore = value
	}
	if value, ok := _c.mutation.Confidence(); ok {
		_spec.SetField(evaluationevent.FieldConfidence, field.TypeFloat64, value)
		_node.Confidence = value
	}
	return _node, _spec
}

// EvaluationEventCreateBulk is the builder for creating many EvaluationEvent entities in bulk.
type EvaluationEventCreateBulk struct {
	config
	err      error
	builders []*EvaluationEventCreate
}

// Save creates the EvaluationEvent entities in the database.
func (_c *EvaluationEventCreateBulk) Save(ctx context.Context) ([]*EvaluationEvent, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*EvaluationEvent, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*EvaluationEventMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *EvaluationEventCreateBulk) SaveX(ctx context.Context) []*EvaluationEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *EvaluationEventCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *EvaluationEventCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
