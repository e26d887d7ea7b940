// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// EvaluationEventsColumns holds the columns for the "evaluation_events" table.
	EvaluationEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "request_id", Type: field.TypeString},
		{Name: "sentence_id", Type: field.TypeString},
		{Name: "attempt_number", Type: field.TypeInt, Default: 0},
		{Name: "hints_used", Type: field.TypeInt, Default: 0},
		{Name: "elapsed_ms", Type: field.TypeInt64, Default: 0},
		{Name: "tier", Type: field.TypeString},
		{Name: "base_score", Type: field.TypeInt},
		{Name: "final_score", Type: field.TypeInt},
		{Name: "confidence", Type: field.TypeFloat64},
	}
	// EvaluationEventsTable holds the schema information for the "evaluation_events" table.
	EvaluationEventsTable = &schema.Table{
		Name:       "evaluation_events",
		Columns:    EvaluationEventsColumns,
		PrimaryKey: []*schema.Column{EvaluationEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "evaluationevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{EvaluationEventsColumns[1]},
			},
			{
				Name:    "evaluationevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{EvaluationEventsColumns[2]},
			},
			{
				Name:    "evaluationevent_sentence_id",
				Unique:  false,
				Columns: []*schema.Column{EvaluationEventsColumns[4]},
			},
			{
				Name:    "evaluationevent_tier",
				Unique:  false,
				Columns: []*schema.Column{EvaluationEventsColumns[8]},
			},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[9]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		EvaluationEventsTable,
		LlmRequestEventsTable,
	}
)

func init() {
}
