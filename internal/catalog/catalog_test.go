package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, c.Migrate(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

// insertAt writes an entry with a controlled created_at so ordering tests
// do not depend on wall-clock spacing.
func insertAt(t *testing.T, c *Catalog, id, subreddit string, method domain.FetchMethod, backend string, createdAt time.Time) {
	t.Helper()
	_, err := c.db.ExecContext(context.Background(), `
		INSERT INTO scrapes (id, subreddit, method, time_filter, fetched_at, backend, location, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, subreddit, string(method), "", "20240315_143001", backend, "loc/"+id, 1, createdAt,
	)
	require.NoError(t, err)
}

func sampleResult() domain.ScrapeResult {
	var b domain.TableBuilder
	b.Append(domain.Row{ID: "p1", PostType: domain.PostTypeOther})
	b.Append(domain.Row{ID: "p2", PostType: domain.PostTypeSingleImage, NumOfImages: 1})
	return domain.ScrapeResult{
		Table:      b.Build(),
		Method:     domain.FetchTop,
		Subreddit:  "programming",
		TimeFilter: domain.TimeFilterDay,
		FetchedAt:  "20240315_143001",
	}
}

func TestRecordAndList(t *testing.T) {
	c := newTestCatalog(t)

	entry, err := c.Record(context.Background(), sampleResult(), "local", "data/programming/top/top_day_20240315_143001.parquet")
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)

	entries, err := c.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "programming", got.Subreddit)
	assert.Equal(t, domain.FetchTop, got.Method)
	assert.Equal(t, domain.TimeFilterDay, got.TimeFilter)
	assert.Equal(t, "20240315_143001", got.FetchedAt)
	assert.Equal(t, "local", got.Backend)
	assert.Equal(t, "data/programming/top/top_day_20240315_143001.parquet", got.Location)
	assert.Equal(t, 2, got.RowCount)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestRecordKeepsEmptyFilter(t *testing.T) {
	c := newTestCatalog(t)

	result := sampleResult()
	result.Method = domain.FetchHot
	result.TimeFilter = ""

	_, err := c.Record(context.Background(), result, "minio", "programming/programming/hot/at_point_in_time/20240315_143001.parquet")
	require.NoError(t, err)

	entries, err := c.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TimeFilter(""), entries[0].TimeFilter)
}

func TestListNewestFirst(t *testing.T) {
	c := newTestCatalog(t)
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	insertAt(t, c, "old", "golang", domain.FetchTop, "local", base)
	insertAt(t, c, "mid", "golang", domain.FetchTop, "local", base.Add(time.Hour))
	insertAt(t, c, "new", "golang", domain.FetchTop, "local", base.Add(2*time.Hour))

	entries, err := c.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)
	assert.Equal(t, "old", entries[2].ID)
}

func TestListFilters(t *testing.T) {
	c := newTestCatalog(t)
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	insertAt(t, c, "a", "golang", domain.FetchTop, "local", base)
	insertAt(t, c, "b", "golang", domain.FetchHot, "minio", base.Add(time.Minute))
	insertAt(t, c, "c", "pics", domain.FetchTop, "minio", base.Add(2*time.Minute))

	bySub, err := c.List(context.Background(), Filter{Subreddit: "golang"})
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	byMethod, err := c.List(context.Background(), Filter{Method: domain.FetchHot})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, "b", byMethod[0].ID)

	byBackend, err := c.List(context.Background(), Filter{Backend: "minio"})
	require.NoError(t, err)
	assert.Len(t, byBackend, 2)

	limited, err := c.List(context.Background(), Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].ID)

	none, err := c.List(context.Background(), Filter{Subreddit: "rust"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOpenCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "catalog.db")

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Migrate(context.Background()))

	_, err = c.Record(context.Background(), sampleResult(), "local", "x")
	require.NoError(t, err)
}

func TestMigrateIdempotent(t *testing.T) {
	c := newTestCatalog(t)
	require.NoError(t, c.Migrate(context.Background()))
	require.NoError(t, c.Migrate(context.Background()))
}
