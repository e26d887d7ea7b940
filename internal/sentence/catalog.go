package sentence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Catalog is an in-memory Repo loaded from a JSON file or seeded
// programmatically. Safe for concurrent use; writes only happen at load time
// in practice, but the lock keeps the contract honest.
type Catalog struct {
	mu    sync.RWMutex
	byID  map[string]*Sentence
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*Sentence)}
}

// LoadCatalog reads a JSON array of sentences from path.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sentence catalog: %w", err)
	}
	defer f.Close()

	c := NewCatalog()
	if err := c.Read(f); err != nil {
		return nil, fmt.Errorf("load sentence catalog %s: %w", path, err)
	}
	return c, nil
}

// Read parses a JSON array of sentences and adds them to the catalog.
func (c *Catalog) Read(r io.Reader) error {
	var sentences []*Sentence
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sentences); err != nil {
		return fmt.Errorf("decode sentences: %w", err)
	}
	for _, s := range sentences {
		if err := c.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Add registers a sentence. Duplicate IDs and sentences without references
// are rejected.
func (c *Catalog) Add(s *Sentence) error {
	if s.ID == "" {
		return fmt.Errorf("sentence has empty ID")
	}
	if s.SourceText == "" {
		return fmt.Errorf("sentence %s has empty source text", s.ID)
	}
	if len(s.References) == 0 {
		return fmt.Errorf("sentence %s has no accepted translations", s.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byID[s.ID]; exists {
		return fmt.Errorf("duplicate sentence ID %s", s.ID)
	}
	c.byID[s.ID] = s
	c.order = append(c.order, s.ID)
	return nil
}

func (c *Catalog) Get(_ context.Context, id string) (*Sentence, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("sentence %q: %w", id, ErrNotFound)
	}
	return s, nil
}

func (c *Catalog) List(_ context.Context) ([]*Sentence, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Sentence, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

// Len returns the number of sentences in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
