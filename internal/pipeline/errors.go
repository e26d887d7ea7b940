package pipeline

import "fmt"

// ValidationError rejects a request before any tier runs: empty submission,
// unknown sentence ID. Surfaced to the caller immediately.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid evaluation request: %s: %s", e.Field, e.Reason)
}

// EvaluationUnavailableError indicates the AI tier failed — timeout, network
// error, or rate limit. The orchestrator responds with the deterministic
// heuristic fallback rather than surfacing this to the learner.
type EvaluationUnavailableError struct {
	Cause error
}

func (e *EvaluationUnavailableError) Error() string {
	return fmt.Sprintf("AI evaluation unavailable: %v", e.Cause)
}

func (e *EvaluationUnavailableError) Unwrap() error { return e.Cause }

// UnparsableResponseError indicates the AI responded but the payload could
// not be parsed as the expected structure, even after stripping wrapping
// artifacts. Treated as a tier failure, never as a zero score.
type UnparsableResponseError struct {
	Raw string
}

func (e *UnparsableResponseError) Error() string {
	return "AI response not parseable as an evaluation"
}
