package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/llm"
	"github.com/abhisek/linguiz/internal/sentence"
)

// AIConfig holds the knobs for the AI evaluation call.
type AIConfig struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one evaluation call end to end, retries included.
	Timeout time.Duration
}

// DefaultAIConfig returns sensible defaults.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		MaxTokens:   512,
		Temperature: 0.2,
		Timeout:     8 * time.Second,
	}
}

// AIEvaluator sends a submission with its sentence context to the LLM and
// parses the structured verdict. Failures come back as typed errors —
// *UnparsableResponseError when the model answered but the payload could
// not be decoded, *EvaluationUnavailableError for everything else — so the
// orchestrator always handles the outcome explicitly.
type AIEvaluator struct {
	provider llm.Provider
	cfg      AIConfig
}

// NewAIEvaluator creates an evaluator on top of an LLM provider.
func NewAIEvaluator(provider llm.Provider, cfg AIConfig) *AIEvaluator {
	return &AIEvaluator{provider: provider, cfg: cfg}
}

const evalSystemPrompt = `You are a supportive language tutor grading a student's translation attempt.
Compare the submission to the accepted reference translations, allowing for
valid alternative phrasings. Score 0-100 where 100 is a fully correct,
natural translation. Be encouraging but precise about errors.`

var evalMessageTmpl = template.Must(template.New("eval").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(
	`Source sentence: {{.SourceText}}
Difficulty: {{.Difficulty}}
{{- if .Tags}}
Grammar concepts: {{join .Tags ", "}}
{{- end}}

Accepted translations:
{{- range .References}}
- {{.}}
{{- end}}

Student submission: {{.Submission}}`))

type evalMessageData struct {
	*sentence.Sentence
	Submission string
}

// aiOutput is the raw decoded LLM payload.
type aiOutput struct {
	Score     int                  `json:"score"`
	Feedback  string               `json:"feedback"`
	SubScores evaluation.SubScores `json:"sub_scores"`
	Issues    []evaluation.Issue   `json:"issues"`
}

// Evaluate performs one AI evaluation. The submission should be the strict
// normalized form so cached judgments line up with what was evaluated.
func (e *AIEvaluator) Evaluate(ctx context.Context, s *sentence.Sentence, submission string) (*evaluation.Result, error) {
	ctx = llm.WithPurpose(ctx, "translation-eval")
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildEvalMessage(s, submission)
	if err != nil {
		return nil, &EvaluationUnavailableError{Cause: fmt.Errorf("build evaluation prompt: %w", err)}
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: evalSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &UnparsableResponseError{Raw: string(invalid.Content)}
		}
		return nil, &EvaluationUnavailableError{Cause: err}
	}

	payload := ExtractPayload(string(resp.Content))
	var out aiOutput
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, &UnparsableResponseError{Raw: string(resp.Content)}
	}

	score := evaluation.ClampScore(out.Score)
	ss := out.SubScores
	return &evaluation.Result{
		Score:      score,
		BaseScore:  score,
		Grade:      evaluation.GradeFor(score),
		Feedback:   out.Feedback,
		Issues:     out.Issues,
		Tier:       evaluation.TierAI,
		Confidence: 1.0,
		SubScores:  &ss,
	}, nil
}

func buildEvalMessage(s *sentence.Sentence, submission string) (string, error) {
	var buf bytes.Buffer
	err := evalMessageTmpl.Execute(&buf, evalMessageData{Sentence: s, Submission: submission})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExtractPayload strips incidental formatting markers from an LLM response
// and returns the embedded JSON object. Models occasionally wrap an
// otherwise-valid payload in markdown code fences or surround it with
// prose; the structured payload is recovered before parsing, and only a
// payload that still fails to parse counts as a tier failure.
func ExtractPayload(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line ("```" or "```json") and any
		// closing fence.
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Cut surrounding prose down to the outermost object.
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
