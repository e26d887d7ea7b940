package pipeline

import "github.com/abhisek/linguiz/internal/llm"

// EvaluationSchema defines the JSON schema for AI translation evaluations.
var EvaluationSchema = &llm.Schema{
	Name:        "translation-evaluation",
	Description: "Structured evaluation of a learner's translation attempt against accepted references",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall quality of the translation on a 0-100 scale",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Two or three encouraging sentences explaining what was right and what to improve",
			},
			"sub_scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"grammar":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"vocabulary":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"naturalness":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"completeness": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
				"required":             []any{"grammar", "vocabulary", "naturalness", "completeness"},
				"additionalProperties": false,
			},
			"issues": map[string]any{
				"type":        "array",
				"description": "Specific problems found in the submission",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"grammar", "vocabulary", "word_order", "spelling", "accent"},
						},
						"detail": map[string]any{
							"type":        "string",
							"description": "One short sentence describing the problem",
						},
					},
					"required":             []any{"kind", "detail"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"score", "feedback", "sub_scores", "issues"},
		"additionalProperties": false,
	},
}
