package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/linguiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "linguiz",
	Short: "Translation evaluation for language learners",
	Long: "Linguiz evaluates free-form translations against reference sentences,\n" +
		"serving cached and pattern-based judgments before falling back to an LLM.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUIZ_DB env var)")
	rootCmd.PersistentFlags().String("sentences", "", "Path to the sentence catalog JSON file")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.linguiz.yaml)")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("sentences", rootCmd.PersistentFlags().Lookup("sentences"))

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(sentencesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads ~/.linguiz.yaml (or --config) and merges LINGUIZ_* env
// vars. Flags take precedence over both.
func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".linguiz")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("LINGUIZ")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// resolveDBPath returns the database path using the db setting (flag, env
// or config file), then the default XDG path.
func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
