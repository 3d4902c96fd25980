package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/trendlab/subreddit-trends/internal/catalog"
	"github.com/trendlab/subreddit-trends/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scrapes",
	Long:  "Lists scrapes recorded in the local catalog, newest first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		sub, _ := cmd.Flags().GetString("subreddit")
		methodStr, _ := cmd.Flags().GetString("method")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := catalog.Filter{Subreddit: sub, Limit: limit}
		if methodStr != "" {
			method, err := domain.ParseFetchMethod(methodStr)
			if err != nil {
				return err
			}
			filter.Method = method
		}

		cat, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer cat.Close()
		if err := cat.Migrate(ctx); err != nil {
			return err
		}

		entries, err := cat.List(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "history")
		}

		if len(entries) == 0 {
			fmt.Println("No scrapes recorded.")
			return nil
		}

		formatHistory(os.Stdout, entries)
		return nil
	},
}

// formatHistory writes a tabular listing of catalog entries.
func formatHistory(out io.Writer, entries []catalog.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBREDDIT\tMETHOD\tFILTER\tROWS\tBACKEND\tSAVED\tLOCATION")
	for _, e := range entries {
		filter := string(e.TimeFilter)
		if filter == "" {
			filter = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			shortID(e.ID), e.Subreddit, e.Method, filter, e.RowCount, e.Backend,
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Location)
	}
	w.Flush()
}

// shortID keeps the first UUID group for compact display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().String("subreddit", "", "only show scrapes of this subreddit")
	historyCmd.Flags().String("method", "", "only show scrapes with this fetch method (top, hot)")
	historyCmd.Flags().IntP("limit", "l", 20, "maximum entries to list")
	rootCmd.AddCommand(historyCmd)
}
