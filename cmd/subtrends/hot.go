package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/trendlab/subreddit-trends/internal/collector"
	"github.com/trendlab/subreddit-trends/internal/scraper"
)

var hotCmd = &cobra.Command{
	Use:   "hot <subreddit>",
	Short: "Fetch the hot submissions of a subreddit",
	Long: `Fetches the current hot submissions of a subreddit. Hot listings take
no time filter, so snapshots are keyed with the at_point_in_time marker.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")
		backendChoice, _ := cmd.Flags().GetString("storage")

		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		col, err := collector.New(*cfg)
		if err != nil {
			return err
		}

		result, err := scraper.New(col).FetchHot(ctx, args[0], limit)
		if err != nil {
			return eris.Wrap(err, "hot")
		}

		if verbose {
			printPreview(os.Stdout, result)
		}

		return saveResult(ctx, result, backendChoice)
	},
}

func init() {
	hotCmd.Flags().IntP("limit", "l", 1, "maximum number of submissions to fetch")
	hotCmd.Flags().BoolP("verbose", "v", false, "print fetch details and a table preview")
	hotCmd.Flags().StringP("storage", "s", "", "storage backend override (local, minio)")
	rootCmd.AddCommand(hotCmd)
}
