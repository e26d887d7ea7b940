package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/linguiz/internal/sentence"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Inspect the sentence catalog",
}

var sentencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := viper.GetString("sentences")
		if catalogPath == "" {
			return fmt.Errorf("no sentence catalog configured (use --sentences or LINGUIZ_SENTENCES)")
		}
		catalog, err := sentence.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("load sentence catalog: %w", err)
		}

		ctx := cmd.Context()
		all, err := catalog.List(ctx)
		if err != nil {
			return fmt.Errorf("list sentences: %w", err)
		}

		tag, _ := cmd.Flags().GetString("tag")

		fmt.Printf("%-12s  %-4s  %-40s  %s\n", "ID", "Lvl", "Source", "References")
		fmt.Println(strings.Repeat("─", 100))
		for _, s := range all {
			if tag != "" && !hasTag(s, tag) {
				continue
			}
			src := s.SourceText
			if len(src) > 40 {
				src = src[:40]
			}
			fmt.Printf("%-12s  %-4s  %-40s  %d\n", s.ID, s.Difficulty, src, len(s.References))
		}
		return nil
	},
}

var sentencesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one sentence with its reference translations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := viper.GetString("sentences")
		if catalogPath == "" {
			return fmt.Errorf("no sentence catalog configured (use --sentences or LINGUIZ_SENTENCES)")
		}
		catalog, err := sentence.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("load sentence catalog: %w", err)
		}

		s, err := catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("sentence %q: %w", args[0], err)
		}

		fmt.Printf("ID:         %s\n", s.ID)
		fmt.Printf("Source:     %s\n", s.SourceText)
		fmt.Printf("Difficulty: %s\n", s.Difficulty)
		if len(s.Tags) > 0 {
			fmt.Printf("Tags:       %s\n", strings.Join(s.Tags, ", "))
		}
		fmt.Println("References:")
		for _, ref := range s.References {
			fmt.Printf("  - %s\n", ref)
		}
		return nil
	},
}

func hasTag(s *sentence.Sentence, tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func init() {
	sentencesListCmd.Flags().String("tag", "", "Only list sentences carrying this tag")

	sentencesCmd.AddCommand(sentencesListCmd)
	sentencesCmd.AddCommand(sentencesShowCmd)
}
