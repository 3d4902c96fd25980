package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trendlab/subreddit-trends/internal/catalog"
	"github.com/trendlab/subreddit-trends/internal/domain"
)

func previewResult(rows int) domain.ScrapeResult {
	var b domain.TableBuilder
	for i := 0; i < rows; i++ {
		b.Append(domain.Row{
			ID:          "p" + string(rune('0'+i)),
			Title:       "A post about something fairly long that should get cut",
			PostType:    domain.PostTypeOther,
			Score:       int64(100 * i),
			NumComments: int64(i),
			UpvoteRatio: 0.9,
		})
	}
	return domain.ScrapeResult{
		Table:      b.Build(),
		Method:     domain.FetchTop,
		Subreddit:  "programming",
		TimeFilter: domain.TimeFilterDay,
		FetchedAt:  "20240315_143001",
	}
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	printPreview(&buf, previewResult(2))

	out := buf.String()
	assert.Contains(t, out, "Retrieved 2 submission(s) from r/programming")
	assert.Contains(t, out, "Method: top")
	assert.Contains(t, out, "Time filter: day")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "p0")
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "...", "long titles are truncated")
}

func TestPrintPreviewCapsRows(t *testing.T) {
	var buf bytes.Buffer
	printPreview(&buf, previewResult(8))

	out := buf.String()
	assert.Contains(t, out, "and 3 more row(s)")
	assert.NotContains(t, out, "p7", "rows past the cap are not printed")
}

func TestPrintPreviewHotOmitsFilter(t *testing.T) {
	result := previewResult(1)
	result.Method = domain.FetchHot
	result.TimeFilter = ""

	var buf bytes.Buffer
	printPreview(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Method: hot")
	assert.NotContains(t, out, "Time filter:")
}

func TestPrintPreviewEmptyTable(t *testing.T) {
	result := previewResult(0)

	var buf bytes.Buffer
	printPreview(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Retrieved 0 submission(s)")
	assert.NotContains(t, out, "SCORE", "no table header for an empty table")
}

func TestFormatHistory(t *testing.T) {
	entries := []catalog.Entry{
		{
			ID:         "0193d2ee-aaaa-bbbb-cccc-ddddeeeeffff",
			Subreddit:  "golang",
			Method:     domain.FetchTop,
			TimeFilter: domain.TimeFilterDay,
			FetchedAt:  "20240315_143001",
			Backend:    "local",
			Location:   "data/golang/top/top_day_20240315_143001.parquet",
			RowCount:   25,
			CreatedAt:  time.Date(2024, 3, 15, 14, 30, 2, 0, time.UTC),
		},
		{
			ID:        "0193d2ee-1111-2222-3333-444455556666",
			Subreddit: "pics",
			Method:    domain.FetchHot,
			FetchedAt: "20240315_150000",
			Backend:   "minio",
			Location:  "pics/pics/hot/at_point_in_time/20240315_150000.parquet",
			RowCount:  10,
			CreatedAt: time.Date(2024, 3, 15, 15, 0, 1, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatHistory(&buf, entries)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "header plus two entries")

	assert.Contains(t, lines[0], "SUBREDDIT")
	assert.Contains(t, out, "0193d2ee")
	assert.NotContains(t, out, "aaaa-bbbb", "IDs are shortened")
	assert.Contains(t, out, "golang")
	assert.Contains(t, lines[2], "-", "missing filter renders as a dash")
	assert.Contains(t, out, "at_point_in_time")
}
