package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// Local writes scrape results as parquet files under a data directory.
type Local struct {
	root string
}

// NewLocal creates a Local backend rooted at dir. Nothing is created until
// the first save.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

func (l *Local) Name() string { return "local" }

// Location returns <root>/<subreddit>/<method>/<method>_<filter>_<ts>.parquet,
// with the sentinel in place of a missing filter.
func (l *Local) Location(result domain.ScrapeResult) string {
	name := fmt.Sprintf("%s_%s_%s.parquet", result.Method, timeFilterSegment(result), result.FetchedAt)
	return filepath.Join(l.root, result.Subreddit, string(result.Method), name)
}

// Save writes the result's table to its derived path, creating parent
// directories on demand. Writing the same key twice overwrites.
func (l *Local) Save(ctx context.Context, result domain.ScrapeResult) error {
	if result.Table.Empty() {
		return ErrEmptyResult
	}

	path := l.Location(result)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "local: create %s", filepath.Dir(path))
	}

	data, err := MarshalTable(result.Table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "local: write %s", path)
	}

	zap.L().Debug("wrote parquet file",
		zap.String("path", path),
		zap.Int("rows", result.Table.Len()),
		zap.Int("bytes", len(data)),
	)
	return nil
}
