package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wildcast",
	Short: "Podcast sponsor matching engine",
	Long:  "Scores a pool of sponsor-side contacts against a creator's podcast profile, serves the matching API, and manages the contact pool.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
