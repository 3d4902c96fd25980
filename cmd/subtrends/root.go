package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "subtrends",
	Short: "Subreddit submission scraper with columnar storage",
	Long: `subtrends fetches ranked subreddit submissions, normalizes them into a
fixed-schema table, and persists parquet snapshots to local disk or MinIO.`,
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
