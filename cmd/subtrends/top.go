package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/trendlab/subreddit-trends/internal/collector"
	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/scraper"
)

var topCmd = &cobra.Command{
	Use:   "top <subreddit>",
	Short: "Fetch the top submissions of a subreddit",
	Long: `Fetches the top submissions of a subreddit within a time filter,
normalizes them into the fixed table schema, and saves the parquet snapshot
to the selected storage backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		filterStr, _ := cmd.Flags().GetString("time-filter")
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")
		backendChoice, _ := cmd.Flags().GetString("storage")

		filter, err := domain.ParseTimeFilter(filterStr)
		if err != nil {
			return err
		}

		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		col, err := collector.New(*cfg)
		if err != nil {
			return err
		}

		result, err := scraper.New(col).FetchTop(ctx, args[0], filter, limit)
		if err != nil {
			return eris.Wrap(err, "top")
		}

		if verbose {
			printPreview(os.Stdout, result)
		}

		return saveResult(ctx, result, backendChoice)
	},
}

func init() {
	topCmd.Flags().StringP("time-filter", "t", "week", "time period for top submissions (hour, day, week, month, year, all)")
	topCmd.Flags().IntP("limit", "l", 1, "maximum number of submissions to fetch")
	topCmd.Flags().BoolP("verbose", "v", false, "print fetch details and a table preview")
	topCmd.Flags().StringP("storage", "s", "", "storage backend override (local, minio)")
	rootCmd.AddCommand(topCmd)
}
