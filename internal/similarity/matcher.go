// Package similarity finds near-match judgments among cached evaluations
// for the same sentence, so a slightly different wording of an already
// judged submission can reuse that judgment instead of calling the AI
// evaluator again.
package similarity

import (
	"context"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/textnorm"
)

// Config holds the matcher knobs.
type Config struct {
	// Threshold is the minimum combined similarity for a candidate to
	// qualify. The comparison is inclusive: a candidate exactly at the
	// threshold is accepted.
	Threshold float64

	// EditWeight and TokenWeight blend the edit-distance complement and
	// token-Jaccard components of the combined score.
	EditWeight  float64
	TokenWeight float64
}

// DefaultConfig returns the documented defaults: 0.85 threshold,
// equal weights.
func DefaultConfig() Config {
	return Config{
		Threshold:   0.85,
		EditWeight:  0.5,
		TokenWeight: 0.5,
	}
}

// Matcher scans the exact-match cache for near matches.
type Matcher struct {
	store evalcache.Store
	cfg   Config
}

// New creates a Matcher over the given cache store.
func New(store evalcache.Store, cfg Config) *Matcher {
	return &Matcher{store: store, cfg: cfg}
}

// Match is a qualifying candidate with its combined similarity score.
type Match struct {
	Entry *evalcache.Entry
	Score float64
}

// FindSimilar returns the best qualifying candidate for the sentence, or
// (nil, nil) on a miss. Candidates are restricted to cache entries for the
// same sentence ID, never cross-sentence. Comparison happens on the
// diacritic-folded forms so an accent slip still counts as a near match.
//
// Tie-break: highest combined score wins; on exact score ties the most
// recently created entry wins (freshest judgment).
func (m *Matcher) FindSimilar(ctx context.Context, sentenceID, submission string) (*Match, error) {
	candidates, err := m.store.Entries(ctx, sentenceID)
	if err != nil {
		return nil, err
	}

	loose := textnorm.Fold(submission)
	var best *Match
	for _, c := range candidates {
		score := m.combined(loose, textnorm.Fold(c.Submission))
		if score < m.cfg.Threshold {
			continue
		}
		switch {
		case best == nil,
			score > best.Score,
			score == best.Score && c.CreatedAt.After(best.Entry.CreatedAt):
			best = &Match{Entry: c, Score: score}
		}
	}
	return best, nil
}

// combined blends the normalized edit-distance complement with token
// Jaccard similarity.
func (m *Matcher) combined(a, b string) float64 {
	return m.cfg.EditWeight*editSimilarity(a, b) + m.cfg.TokenWeight*jaccard(a, b)
}

// Combined scores two texts with the default weights. Used by the
// heuristic fallback, which compares a submission against accepted
// references with the same arithmetic the matcher uses.
func Combined(a, b string) float64 {
	cfg := DefaultConfig()
	return cfg.EditWeight*editSimilarity(a, b) + cfg.TokenWeight*jaccard(a, b)
}

// editSimilarity is 1 − levenshtein(a, b)/max(len(a), len(b)), in runes.
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, nil)
	return 1 - float64(dist)/float64(maxLen)
}

// jaccard is intersection-over-union of the whitespace-split token sets.
func jaccard(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(ta))
	for _, tok := range ta {
		setA[tok] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tb))
	for _, tok := range tb {
		setB[tok] = struct{}{}
	}

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
