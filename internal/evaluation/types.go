package evaluation

// Tier identifies which evaluation strategy produced a result.
// Tiers are tried in fixed priority order: exact → similarity → template → ai.
// The fallback tier is only reachable when the AI tier fails.
type Tier string

const (
	TierExact      Tier = "exact"
	TierSimilarity Tier = "similarity"
	TierTemplate   Tier = "template"
	TierAI         Tier = "ai"
	TierFallback   Tier = "fallback"
)

// IssueKind categorizes a flagged problem in a submission.
type IssueKind string

const (
	IssueGrammar    IssueKind = "grammar"
	IssueVocabulary IssueKind = "vocabulary"
	IssueWordOrder  IssueKind = "word_order"
	IssueSpelling   IssueKind = "spelling"
	IssueAccent     IssueKind = "accent"
)

// Issue is a single flagged problem with a short explanation.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// Request describes one submission to evaluate. Transient, created per attempt.
type Request struct {
	// ID uniquely identifies this attempt for event logging.
	ID string

	SentenceID    string
	Text          string
	HintsUsed     int
	AttemptNumber int
	ElapsedMs     int64
}

// SubScores holds the AI evaluator's per-dimension scores (0–100 each).
type SubScores struct {
	Grammar      int `json:"grammar"`
	Vocabulary   int `json:"vocabulary"`
	Naturalness  int `json:"naturalness"`
	Completeness int `json:"completeness"`
}

// Result is the outcome of evaluating one submission. Immutable once produced.
//
// Scores are on a 0–100 scale throughout. Score is the final score after
// hint penalties; BaseScore is the unpenalized judgment, which is what gets
// cached so future lookups under different hint counts remain valid.
type Result struct {
	Score      int        `json:"score"`
	BaseScore  int        `json:"base_score"`
	Grade      Grade      `json:"grade"`
	Feedback   string     `json:"feedback"`
	Issues     []Issue    `json:"issues,omitempty"`
	Tier       Tier       `json:"tier"`
	Confidence float64    `json:"confidence"`
	SubScores  *SubScores `json:"sub_scores,omitempty"`
}

// Clone returns a deep copy. Cache tiers hand out clones so a stored
// judgment is never mutated through a returned result.
func (r *Result) Clone() *Result {
	out := *r
	if r.Issues != nil {
		out.Issues = make([]Issue, len(r.Issues))
		copy(out.Issues, r.Issues)
	}
	if r.SubScores != nil {
		ss := *r.SubScores
		out.SubScores = &ss
	}
	return &out
}

// ClampScore bounds a score to the canonical 0–100 scale.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
