package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/llm"
	"github.com/abhisek/linguiz/internal/sentence"
)

var aiTestSentence = &sentence.Sentence{
	ID:         "s1",
	SourceText: "La casa es roja",
	References: []string{"the house is red", "the home is red"},
	Difficulty: "a1",
	Tags:       []string{"ser-estar", "colors"},
}

func TestAIEvaluator_ParsesStructuredVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"score": 85,
			"feedback": "Nearly perfect, minor word choice issue.",
			"sub_scores": {"grammar": 90, "vocabulary": 80, "naturalness": 85, "completeness": 90},
			"issues": [{"kind": "vocabulary", "detail": "home vs house"}]
		}`),
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	res, err := e.Evaluate(context.Background(), aiTestSentence, "the home is red")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Score != 85 || res.BaseScore != 85 {
		t.Errorf("score = %d/%d, want 85/85", res.Score, res.BaseScore)
	}
	if res.Grade != evaluation.GradeGood {
		t.Errorf("grade = %s, want good", res.Grade)
	}
	if res.Tier != evaluation.TierAI {
		t.Errorf("tier = %s, want ai", res.Tier)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", res.Confidence)
	}
	if res.SubScores == nil || res.SubScores.Vocabulary != 80 {
		t.Errorf("unexpected sub scores: %+v", res.SubScores)
	}
	if len(res.Issues) != 1 || res.Issues[0].Kind != evaluation.IssueVocabulary {
		t.Errorf("unexpected issues: %+v", res.Issues)
	}
}

func TestAIEvaluator_PromptIncludesContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score": 100, "feedback": "ok"}`),
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	if _, err := e.Evaluate(context.Background(), aiTestSentence, "the house is red"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema == nil {
		t.Fatal("structured output schema not set")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"La casa es roja", "Difficulty: a1", "the house is red", "the home is red", "ser-estar"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestAIEvaluator_FencedPayloadRecovered(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("```json\n{\"score\": 70, \"feedback\": \"fair\"}\n```"),
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	res, err := e.Evaluate(context.Background(), aiTestSentence, "the house red")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Score != 70 {
		t.Errorf("score = %d, want 70", res.Score)
	}
}

func TestAIEvaluator_ScoreClamped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score": 140, "feedback": "overenthusiastic"}`),
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	res, err := e.Evaluate(context.Background(), aiTestSentence, "the house is red")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("score = %d, want clamped 100", res.Score)
	}
}

func TestAIEvaluator_UnparsablePayload(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`the student did well overall`),
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	_, err := e.Evaluate(context.Background(), aiTestSentence, "the house is red")
	var uerr *UnparsableResponseError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnparsableResponseError, got: %v", err)
	}
	if uerr.Raw == "" {
		t.Error("raw response not preserved for diagnostics")
	}
}

func TestAIEvaluator_SchemaViolationIsUnparsable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"grade": "A+"}`),
			Err:     errors.New("schema validation failed"),
		},
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	_, err := e.Evaluate(context.Background(), aiTestSentence, "the house is red")
	var uerr *UnparsableResponseError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnparsableResponseError, got: %v", err)
	}
}

func TestAIEvaluator_ProviderFailureIsUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	e := NewAIEvaluator(mock, DefaultAIConfig())

	_, err := e.Evaluate(context.Background(), aiTestSentence, "the house is red")
	var uerr *EvaluationUnavailableError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected EvaluationUnavailableError, got: %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("cause not preserved through Unwrap: %v", err)
	}
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"score": 90}`, `{"score": 90}`},
		{"fenced", "```\n{\"score\": 90}\n```", `{"score": 90}`},
		{"fenced with language", "```json\n{\"score\": 90}\n```", `{"score": 90}`},
		{"surrounding prose", `Here is the verdict: {"score": 90} Hope that helps!`, `{"score": 90}`},
		{"leading whitespace", "  \n {\"score\": 90}", `{"score": 90}`},
		{"no object", "no json here", "no json here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPayload(tt.raw); got != tt.want {
				t.Errorf("ExtractPayload(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
