package pipeline

import (
	"math"

	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/sentence"
	"github.com/abhisek/linguiz/internal/similarity"
	"github.com/abhisek/linguiz/internal/textnorm"
)

const fallbackFeedback = "Automatic evaluation is temporarily unavailable. " +
	"This provisional score reflects how closely your answer matches the accepted translations — try again later for full feedback."

// heuristicResult produces the deterministic fallback when the AI tier
// fails: the submission is scored by its best superficial similarity to any
// accepted reference. The result is tagged tier fallback with confidence 0
// and must never be persisted — an unreliable guess must not poison future
// exact lookups.
func heuristicResult(s *sentence.Sentence, submission string) *evaluation.Result {
	loose := textnorm.Fold(submission)
	best := 0.0
	for _, ref := range s.References {
		if score := similarity.Combined(loose, textnorm.Fold(ref)); score > best {
			best = score
		}
	}

	score := evaluation.ClampScore(int(math.Round(best * 100)))
	return &evaluation.Result{
		Score:      score,
		BaseScore:  score,
		Grade:      evaluation.GradeFor(score),
		Feedback:   fallbackFeedback,
		Tier:       evaluation.TierFallback,
		Confidence: 0,
	}
}
