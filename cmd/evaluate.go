package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/linguiz/internal/evalcache"
	"github.com/abhisek/linguiz/internal/evaluation"
	"github.com/abhisek/linguiz/internal/llm"
	"github.com/abhisek/linguiz/internal/patterns"
	"github.com/abhisek/linguiz/internal/pipeline"
	"github.com/abhisek/linguiz/internal/sentence"
	"github.com/abhisek/linguiz/internal/similarity"
	"github.com/abhisek/linguiz/internal/store"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <sentence-id> <translation>",
	Short: "Evaluate a translation attempt",
	Long: "Evaluate a submitted translation for a catalog sentence. The submission\n" +
		"is checked against the evaluation cache, near-miss similarity matches and\n" +
		"known error patterns before an LLM is consulted.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentenceID := args[0]
		text := args[1]

		hints, _ := cmd.Flags().GetInt("hints")
		attempt, _ := cmd.Flags().GetInt("attempt")
		noAI, _ := cmd.Flags().GetBool("no-ai")
		asJSON, _ := cmd.Flags().GetBool("json")

		catalogPath := viper.GetString("sentences")
		if catalogPath == "" {
			return fmt.Errorf("no sentence catalog configured (use --sentences or LINGUIZ_SENTENCES)")
		}
		catalog, err := sentence.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("load sentence catalog: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		cfg := pipelineConfig()

		cache, err := openCache(cfg.Cache, logger)
		if err != nil {
			return fmt.Errorf("open evaluation cache: %w", err)
		}
		defer cache.Close()

		var library *patterns.Library
		if p := viper.GetString("templates"); p != "" {
			library, err = patterns.LoadLibrary(p)
			if err != nil {
				return fmt.Errorf("load error templates: %w", err)
			}
		}

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo()
		if err != nil {
			return fmt.Errorf("init event repo: %w", err)
		}

		ctx := cmd.Context()

		var evaluator *pipeline.AIEvaluator
		if !noAI {
			provider, err := llm.NewProviderFromEnv(ctx, events)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v (continuing without AI tier)\n", err)
			} else {
				evaluator = pipeline.NewAIEvaluator(provider, cfg.AI)
			}
		}

		orch, err := pipeline.New(pipeline.Options{
			Sentences:  catalog,
			Cache:      cache,
			Matcher:    similarity.New(cache, cfg.Similarity),
			Templates:  library,
			Evaluator:  evaluator,
			Events:     events,
			Penalties:  cfg.Penalties,
			MaxPenalty: cfg.MaxPenalty,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}

		res, err := orch.EvaluateTranslation(ctx, evaluation.Request{
			SentenceID:    sentenceID,
			Text:          text,
			HintsUsed:     hints,
			AttemptNumber: attempt,
		})
		if err != nil {
			var verr *pipeline.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("invalid request: %s", verr.Reason)
			}
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}
		printResult(res)
		return nil
	},
}

// pipelineConfig merges defaults with settings from flags, env and the
// config file.
func pipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()

	if v := viper.GetFloat64("similarity.threshold"); v > 0 {
		cfg.Similarity.Threshold = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetInt("cache.capacity"); v > 0 {
		cfg.Cache.Capacity = v
	}
	if v := viper.GetDuration("ai.timeout"); v > 0 {
		cfg.AI.Timeout = v
	}
	return cfg
}

// openCache opens the badger-backed cache when a cache dir is configured,
// otherwise an in-process memory cache that lives for this invocation only.
func openCache(cfg evalcache.Config, logger *slog.Logger) (evalcache.Store, error) {
	dir := viper.GetString("cache.dir")
	if dir == "" {
		return evalcache.NewMemoryStore(cfg), nil
	}

	bcfg := evalcache.DefaultBadgerConfig(dir)
	bcfg.TTL = cfg.TTL
	bcfg.Logger = logger
	return evalcache.OpenBadger(bcfg)
}

func printResult(res *evaluation.Result) {
	fmt.Printf("Score:      %d/100 (%s)\n", res.Score, res.Grade)
	if res.BaseScore != res.Score {
		fmt.Printf("Base:       %d (hint penalty applied)\n", res.BaseScore)
	}
	fmt.Printf("Tier:       %s\n", res.Tier)
	fmt.Printf("Confidence: %.2f\n", res.Confidence)
	if res.Feedback != "" {
		fmt.Printf("\n%s\n", res.Feedback)
	}
	if len(res.Issues) > 0 {
		fmt.Println("\nIssues:")
		for _, issue := range res.Issues {
			fmt.Printf("  - [%s] %s\n", issue.Kind, issue.Detail)
		}
	}
}

func init() {
	evaluateCmd.Flags().Int("hints", 0, "Number of hints the learner used")
	evaluateCmd.Flags().Int("attempt", 1, "Attempt number for this sentence")
	evaluateCmd.Flags().String("templates", "", "Path to the error template JSON file")
	evaluateCmd.Flags().String("cache-dir", "", "Directory for the persistent evaluation cache (default: in-memory)")
	evaluateCmd.Flags().Float64("threshold", 0, "Similarity threshold override (0..1)")
	evaluateCmd.Flags().Bool("no-ai", false, "Disable the AI tier, fall back to heuristic scoring")
	evaluateCmd.Flags().Bool("json", false, "Print the result as JSON")

	viper.BindPFlag("templates", evaluateCmd.Flags().Lookup("templates"))
	viper.BindPFlag("cache.dir", evaluateCmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("similarity.threshold", evaluateCmd.Flags().Lookup("threshold"))
}
