// Package patterns matches submissions against known-wrong patterns for a
// sentence — common misconjugations, dropped accents, word-order swaps —
// producing instant canned feedback without an AI call.
//
// Templates are authored offline and are read-only at evaluation time.
// Within a sentence the list order is the author-defined priority: the
// first matching template wins.
package patterns

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/abhisek/linguiz/internal/evaluation"
)

// Template is one known-wrong pattern and its canned judgment.
type Template struct {
	// Pattern is compared against the strict normalized submission.
	// Literal templates require exact equality; regex templates use
	// full-string regexp matching.
	Pattern string `json:"pattern"`
	Regex   bool   `json:"regex,omitempty"`

	Score    int                `json:"score"`
	Feedback string             `json:"feedback"`
	Issues   []evaluation.Issue `json:"issues,omitempty"`

	// Confidence reflects that a template is a heuristic, not a semantic
	// judgment. Authored per template; defaults to 0.75.
	Confidence float64 `json:"confidence,omitempty"`
}

const defaultConfidence = 0.75

type compiled struct {
	tpl Template
	re  *regexp.Regexp // nil for literal templates
}

// Library holds the per-sentence template lists.
type Library struct {
	mu         sync.RWMutex
	bySentence map[string][]compiled
}

// NewLibrary creates an empty template library.
func NewLibrary() *Library {
	return &Library{bySentence: make(map[string][]compiled)}
}

// LoadLibrary reads a JSON object mapping sentence IDs to template lists.
func LoadLibrary(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template library: %w", err)
	}
	defer f.Close()

	l := NewLibrary()
	if err := l.Read(f); err != nil {
		return nil, fmt.Errorf("load template library %s: %w", path, err)
	}
	return l, nil
}

// Read parses a JSON object of sentence ID → templates and registers them.
func (l *Library) Read(r io.Reader) error {
	var raw map[string][]Template
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("decode templates: %w", err)
	}
	for sentenceID, tpls := range raw {
		for _, t := range tpls {
			if err := l.Add(sentenceID, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// Add appends a template to a sentence's list, compiling regex patterns.
func (l *Library) Add(sentenceID string, t Template) error {
	if sentenceID == "" {
		return fmt.Errorf("template has empty sentence ID")
	}
	if t.Pattern == "" {
		return fmt.Errorf("template for sentence %s has empty pattern", sentenceID)
	}
	if t.Confidence == 0 {
		t.Confidence = defaultConfidence
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("template for sentence %s has confidence %v outside [0,1]", sentenceID, t.Confidence)
	}

	c := compiled{tpl: t}
	if t.Regex {
		re, err := regexp.Compile("^(?:" + t.Pattern + ")$")
		if err != nil {
			return fmt.Errorf("template for sentence %s: %w", sentenceID, err)
		}
		c.re = re
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.bySentence[sentenceID] = append(l.bySentence[sentenceID], c)
	return nil
}

// Match returns the canned result for the first template matching the
// normalized submission, or nil when no template applies.
func (l *Library) Match(sentenceID, submission string) *evaluation.Result {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, c := range l.bySentence[sentenceID] {
		if !c.matches(submission) {
			continue
		}
		t := c.tpl
		score := evaluation.ClampScore(t.Score)
		res := &evaluation.Result{
			Score:      score,
			BaseScore:  score,
			Grade:      evaluation.GradeFor(score),
			Feedback:   t.Feedback,
			Tier:       evaluation.TierTemplate,
			Confidence: t.Confidence,
		}
		if len(t.Issues) > 0 {
			res.Issues = make([]evaluation.Issue, len(t.Issues))
			copy(res.Issues, t.Issues)
		}
		return res
	}
	return nil
}

func (c compiled) matches(submission string) bool {
	if c.re != nil {
		return c.re.MatchString(submission)
	}
	return c.tpl.Pattern == submission
}
