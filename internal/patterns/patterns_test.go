package patterns

import (
	"strings"
	"testing"

	"github.com/abhisek/linguiz/internal/evaluation"
)

func TestLiteralMatch(t *testing.T) {
	l := NewLibrary()
	err := l.Add("42", Template{
		Pattern:  "bebo un café todas las mañanas",
		Score:    70,
		Feedback: "Close — the article is unnecessary here.",
		Issues:   []evaluation.Issue{{Kind: evaluation.IssueGrammar, Detail: "superfluous article"}},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	res := l.Match("42", "bebo un café todas las mañanas")
	if res == nil {
		t.Fatal("expected template match")
	}
	if res.Tier != evaluation.TierTemplate {
		t.Errorf("tier = %q, want template", res.Tier)
	}
	if res.Confidence != defaultConfidence {
		t.Errorf("confidence = %v, want default %v", res.Confidence, defaultConfidence)
	}
	if res.Score != 70 || res.BaseScore != 70 {
		t.Errorf("score = %d/%d, want 70/70", res.Score, res.BaseScore)
	}
}

func TestLiteralRequiresExactEquality(t *testing.T) {
	l := NewLibrary()
	l.Add("42", Template{Pattern: "bebo cafe", Score: 60, Feedback: "missing accent"})

	if res := l.Match("42", "bebo cafe por la tarde"); res != nil {
		t.Error("literal pattern matched a superstring")
	}
}

func TestRegexMatchAnchored(t *testing.T) {
	l := NewLibrary()
	err := l.Add("42", Template{
		Pattern:    `beb(o|e) cafe.*`,
		Regex:      true,
		Score:      65,
		Feedback:   "Watch the accent on café.",
		Confidence: 0.8,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if res := l.Match("42", "bebe cafe todas las mañanas"); res == nil {
		t.Error("expected regex match")
	}
	// Anchoring: the pattern must cover the whole submission.
	if res := l.Match("42", "yo bebo cafe"); res != nil {
		t.Error("regex matched an unanchored substring")
	}
}

func TestFirstMatchWins(t *testing.T) {
	l := NewLibrary()
	l.Add("1", Template{Pattern: `.*cafe.*`, Regex: true, Score: 50, Feedback: "first"})
	l.Add("1", Template{Pattern: `bebo cafe`, Score: 80, Feedback: "second"})

	res := l.Match("1", "bebo cafe")
	if res == nil {
		t.Fatal("expected match")
	}
	if res.Feedback != "first" {
		t.Errorf("feedback = %q, want the earlier template to win", res.Feedback)
	}
}

func TestSentenceScoping(t *testing.T) {
	l := NewLibrary()
	l.Add("A", Template{Pattern: "bebo cafe", Score: 60, Feedback: "accent"})

	if res := l.Match("B", "bebo cafe"); res != nil {
		t.Error("template leaked across sentences")
	}
}

func TestNoMatchIsMiss(t *testing.T) {
	l := NewLibrary()
	l.Add("1", Template{Pattern: "x", Score: 10, Feedback: "f"})
	if res := l.Match("1", "totally different"); res != nil {
		t.Error("expected miss")
	}
	if res := l.Match("unknown-sentence", "anything"); res != nil {
		t.Error("expected miss for unknown sentence")
	}
}

func TestReadLibrary(t *testing.T) {
	data := `{
		"42": [
			{"pattern": "bebo cafe todas las mananas", "score": 75,
			 "feedback": "Almost — mind the accents.",
			 "issues": [{"kind": "accent", "detail": "café, mañanas"}],
			 "confidence": 0.8}
		]
	}`
	l := NewLibrary()
	if err := l.Read(strings.NewReader(data)); err != nil {
		t.Fatalf("Read: %v", err)
	}
	res := l.Match("42", "bebo cafe todas las mananas")
	if res == nil {
		t.Fatal("expected match from loaded library")
	}
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", res.Confidence)
	}
	if len(res.Issues) != 1 || res.Issues[0].Kind != evaluation.IssueAccent {
		t.Errorf("issues = %+v", res.Issues)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	l := NewLibrary()
	if err := l.Add("", Template{Pattern: "x"}); err == nil {
		t.Error("expected error for empty sentence ID")
	}
	if err := l.Add("1", Template{Pattern: ""}); err == nil {
		t.Error("expected error for empty pattern")
	}
	if err := l.Add("1", Template{Pattern: "(", Regex: true}); err == nil {
		t.Error("expected error for bad regex")
	}
	if err := l.Add("1", Template{Pattern: "x", Confidence: 1.5}); err == nil {
		t.Error("expected error for out-of-range confidence")
	}
}
