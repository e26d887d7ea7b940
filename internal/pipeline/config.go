package pipeline

import (
	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/similarity"
)

// Config gathers the recognized pipeline options in one place so the CLI
// layer can bind them to flags and the config file.
type Config struct {
	Similarity similarity.Config
	Cache      evalcache.Config
	AI         AIConfig

	// Penalties is the per-hint deduction table; MaxPenalty caps the
	// cumulative deduction.
	Penalties  evaluation.PenaltyTable
	MaxPenalty int
}

// DefaultConfig returns the documented defaults: 0.85 similarity threshold,
// 7-day cache TTL, 8-second AI timeout, escalating hint deductions
// (5, 5, 10, 10, ...) capped at 30 total.
func DefaultConfig() Config {
	return Config{
		Similarity: similarity.DefaultConfig(),
		Cache:      evalcache.DefaultConfig(),
		AI:         DefaultAIConfig(),
		Penalties:  evaluation.DefaultPenaltyTable(),
		MaxPenalty: 30,
	}
}
