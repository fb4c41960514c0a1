package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alimgiray/gitpulse/pkg/config"
	"github.com/alimgiray/gitpulse/pkg/logger"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "gitpulse",
	Short: "Per-developer commit statistics for git repositories",
	Long: `gitpulse analyzes git commit history and ranks developers by commit
consistency: coverage ratios, streaks, gaps and a composite frequency
score. Multiple repositories merge into one aggregate with duplicate
commits counted once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Init(config.AppConfig.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(identityCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
