// Package sentence holds the immutable reference units learners translate.
// Sentences are produced by content ingestion and are read-only to the
// evaluation core.
package sentence

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a sentence ID is unknown.
var ErrNotFound = errors.New("sentence not found")

// Sentence is one translation exercise: a source text plus the ordered
// list of accepted reference translations.
type Sentence struct {
	ID string `json:"id"`

	// SourceText is the sentence in the learner's language.
	SourceText string `json:"source_text"`

	// References are the accepted translations, in author preference order.
	References []string `json:"references"`

	// Difficulty is a CEFR-style level: a1, a2, b1, b2, c1, c2.
	Difficulty string `json:"difficulty"`

	// Tags name the grammar concepts the sentence exercises.
	Tags []string `json:"tags,omitempty"`
}

// Repo provides read access to the sentence catalog.
type Repo interface {
	// Get returns the sentence with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Sentence, error)

	// List returns all sentences in catalog order.
	List(ctx context.Context) ([]*Sentence, error)
}
