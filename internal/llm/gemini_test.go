package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{"type": "string"},
			"score":    map[string]any{"type": "integer"},
			"grade":    map[string]any{"type": "string", "enum": []any{"excellent", "good", "fair"}},
			"sub_scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"feedback", "score"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["feedback"].Type != "STRING" {
		t.Fatalf("expected STRING for feedback, got %s", schema.Properties["feedback"].Type)
	}
	if schema.Properties["score"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for score, got %s", schema.Properties["score"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["sub_scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for sub_scores, got %s", schema.Properties["sub_scores"].Type)
	}
	if schema.Properties["sub_scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for sub_scores items, got %s", schema.Properties["sub_scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
