package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/collector"
	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/ingest"
	"github.com/trendlab/subreddit-trends/internal/scraper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape every target in a CSV file",
	Long: `Reads scrape targets from a CSV of subreddit[,method[,time_filter]]
rows (header skipped) and fetches and saves each one in turn. Targets are
processed sequentially so the collector's rate limit stays honest.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input, _ := cmd.Flags().GetString("input")
		limit, _ := cmd.Flags().GetInt("limit")
		backendChoice, _ := cmd.Flags().GetString("storage")

		targets, err := ingest.LoadTargets(input)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return eris.Errorf("batch: no valid targets in %s", input)
		}

		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		col, err := collector.New(*cfg)
		if err != nil {
			return err
		}
		s := scraper.New(col)

		log := zap.L().With(zap.String("command", "batch"))
		log.Info("starting scrape cycle", zap.Int("targets", len(targets)))

		failed := 0
		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return err
			}

			var result domain.ScrapeResult
			var err error
			switch t.Method {
			case domain.FetchHot:
				result, err = s.FetchHot(ctx, t.Subreddit, limit)
			default:
				result, err = s.FetchTop(ctx, t.Subreddit, t.TimeFilter, limit)
			}
			if err != nil {
				log.Error("scrape failed", zap.String("subreddit", t.Subreddit), zap.Error(err))
				failed++
				continue
			}

			if result.Table.Empty() {
				log.Warn("no submissions returned", zap.String("subreddit", t.Subreddit))
				continue
			}

			if err := saveResult(ctx, result, backendChoice); err != nil {
				log.Error("save failed", zap.String("subreddit", t.Subreddit), zap.Error(err))
				failed++
			}
		}

		if failed > 0 {
			return eris.Errorf("batch: %d of %d targets failed", failed, len(targets))
		}
		log.Info("scrape cycle complete", zap.Int("targets", len(targets)))
		return nil
	},
}

func init() {
	batchCmd.Flags().String("input", "input/subreddits.csv", "CSV file of scrape targets")
	batchCmd.Flags().IntP("limit", "l", 1, "maximum submissions per target")
	batchCmd.Flags().StringP("storage", "s", "", "storage backend override (local, minio)")
	rootCmd.AddCommand(batchCmd)
}
