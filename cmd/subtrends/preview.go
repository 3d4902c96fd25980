package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// previewRows caps how many table rows verbose mode prints.
const previewRows = 5

// printPreview writes the fetch summary and the first rows of the table.
func printPreview(out io.Writer, result domain.ScrapeResult) {
	fmt.Fprintf(out, "Retrieved %d submission(s) from r/%s\n", result.Table.Len(), result.Subreddit)
	fmt.Fprintf(out, "Method: %s\n", result.Method)
	if result.TimeFilter != "" {
		fmt.Fprintf(out, "Time filter: %s\n", result.TimeFilter)
	}

	if result.Table.Empty() {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSCORE\tCOMMENTS\tIMAGES\tRATIO")
	for i, row := range result.Table.Rows() {
		if i == previewRows {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2f\n",
			row.ID, truncate(row.Title, 40), row.PostType,
			row.Score, row.NumComments, row.NumOfImages, row.UpvoteRatio)
	}
	w.Flush()

	if result.Table.Len() > previewRows {
		fmt.Fprintf(out, "... and %d more row(s)\n", result.Table.Len()-previewRows)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
