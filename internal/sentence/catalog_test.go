package sentence

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCatalogAddAndGet(t *testing.T) {
	c := NewCatalog()
	err := c.Add(&Sentence{
		ID:         "42",
		SourceText: "I drink coffee every morning.",
		References: []string{"Bebo café todas las mañanas."},
		Difficulty: "a2",
		Tags:       []string{"present-tense"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	s, err := c.Get(context.Background(), "42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.SourceText != "I drink coffee every morning." {
		t.Errorf("source = %q", s.SourceText)
	}
}

func TestCatalogUnknownID(t *testing.T) {
	c := NewCatalog()
	_, err := c.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogRejectsInvalid(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(&Sentence{ID: "", SourceText: "x", References: []string{"y"}}); err == nil {
		t.Error("expected error for empty ID")
	}
	if err := c.Add(&Sentence{ID: "1", SourceText: "x"}); err == nil {
		t.Error("expected error for missing references")
	}
	if err := c.Add(&Sentence{ID: "1", SourceText: "x", References: []string{"y"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(&Sentence{ID: "1", SourceText: "z", References: []string{"w"}}); err == nil {
		t.Error("expected error for duplicate ID")
	}
}

func TestCatalogRead(t *testing.T) {
	data := `[
		{"id": "1", "source_text": "Good morning.", "references": ["Buenos días."], "difficulty": "a1"},
		{"id": "2", "source_text": "See you later.", "references": ["Hasta luego.", "Nos vemos."], "difficulty": "a1"}
	]`
	c := NewCatalog()
	if err := c.Read(strings.NewReader(data)); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	all, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all[0].ID != "1" || all[1].ID != "2" {
		t.Errorf("catalog order not preserved: %v, %v", all[0].ID, all[1].ID)
	}
}
