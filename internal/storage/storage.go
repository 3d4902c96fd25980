// Package storage persists scrape results under deterministic,
// collision-resistant keys. All backends share one parquet codec, so a file
// written to local disk and an object uploaded to MinIO are byte-compatible
// and readable by the same tools.
package storage

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/trendlab/subreddit-trends/internal/config"
	"github.com/trendlab/subreddit-trends/internal/domain"
)

// sentinelTimeFilter stands in for a missing time filter so keys stay
// well-formed for filterless fetch methods. It appears only in derived keys;
// scrape results are never rewritten.
const sentinelTimeFilter = "at_point_in_time"

// ErrEmptyResult is returned when a backend is asked to persist a zero-row
// table. The result itself stays valid and inspectable; callers that want
// to fetch-and-discard simply skip the save.
var ErrEmptyResult = eris.New("storage: empty result, nothing to persist")

// ErrProvisioning is returned when the destination bucket cannot be ensured
// before an upload.
var ErrProvisioning = eris.New("storage: bucket provisioning failed")

// Backend writes one scrape result to a durable destination.
type Backend interface {
	// Save persists the result's table under the backend's deterministic
	// key. A zero-row table fails with ErrEmptyResult.
	Save(ctx context.Context, result domain.ScrapeResult) error
	// Location returns the destination key Save would write to.
	Location(result domain.ScrapeResult) string
	// Name identifies the backend ("local", "minio").
	Name() string
}

// New selects a storage backend. An empty choice falls back to the
// configured default. MinIO buckets are named after the subreddit and
// provisioned here, before any save happens.
func New(ctx context.Context, cfg config.Config, subreddit, choice string) (Backend, error) {
	if choice == "" {
		choice = cfg.Storage.Backend
	}
	switch choice {
	case "local":
		return NewLocal(cfg.Storage.DataDir), nil
	case "minio":
		return NewMinio(ctx, cfg.Minio, subreddit)
	default:
		return nil, eris.Errorf("unknown storage backend: %q (use 'local' or 'minio')", choice)
	}
}

// timeFilterSegment renders the result's time filter for key derivation,
// substituting the sentinel when no filter applies.
func timeFilterSegment(result domain.ScrapeResult) string {
	if result.TimeFilter == "" {
		return sentinelTimeFilter
	}
	return string(result.TimeFilter)
}
