package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent evaluation results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		byTier, _ := cmd.Flags().GetBool("by-tier")

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		repo, err := s.EventRepo()
		if err != nil {
			return fmt.Errorf("init event repo: %w", err)
		}
		ctx := cmd.Context()

		if byTier {
			usage, err := repo.EvaluationsByTier(ctx)
			if err != nil {
				return fmt.Errorf("aggregate by tier: %w", err)
			}
			if len(usage) == 0 {
				fmt.Println("No evaluations recorded yet.")
				return nil
			}
			fmt.Printf("%-12s  %6s  %9s\n", "Tier", "Count", "Avg Score")
			fmt.Println(strings.Repeat("─", 32))
			for _, u := range usage {
				fmt.Printf("%-12s  %6d  %9.1f\n", u.Tier, u.Count, u.AvgFinalScore)
			}
			return nil
		}

		events, err := repo.QueryEvaluations(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query evaluations: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No evaluations recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %-11s  %5s  %5s  %5s  %4s\n",
			"Timestamp", "Sentence", "Tier", "Base", "Final", "Conf", "Hint")
		fmt.Println(strings.Repeat("─", 76))
		for _, e := range events {
			fmt.Printf("%-19s  %-12s  %-11s  %5d  %5d  %5.2f  %4d\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SentenceID,
				e.Tier,
				e.BaseScore,
				e.FinalScore,
				e.Confidence,
				e.HintsUsed,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of evaluations to show")
	historyCmd.Flags().Bool("by-tier", false, "Show counts aggregated by resolution tier")
}
