// Package scraper orchestrates one bounded fetch: it asks the collector for
// ranked submissions, runs every one through the normalizer, and assembles
// the immutable result.
package scraper

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/normalize"
)

// Scraper turns raw listings into scrape results. It performs no storage
// I/O; persisting the result is the caller's concern.
type Scraper struct {
	collector domain.Collector
	now       func() time.Time
}

// New creates a Scraper on top of a collector.
func New(c domain.Collector) *Scraper {
	return &Scraper{collector: c, now: time.Now}
}

// FetchTop retrieves the top submissions of a subreddit within a time
// filter and normalizes them. The fetch timestamp is taken once, before the
// remote call.
func (s *Scraper) FetchTop(ctx context.Context, subreddit string, filter domain.TimeFilter, limit int) (domain.ScrapeResult, error) {
	fetchedAt := s.now().Format(domain.FetchedAtLayout)

	subs, err := s.collector.TopSubmissions(ctx, subreddit, filter, limit)
	if err != nil {
		return domain.ScrapeResult{}, eris.Wrapf(err, "scraper: top r/%s", subreddit)
	}

	table, err := buildTable(subs, subreddit)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	zap.L().Debug("fetched top submissions",
		zap.String("subreddit", subreddit),
		zap.String("time_filter", string(filter)),
		zap.Int("rows", table.Len()),
	)

	return domain.ScrapeResult{
		Table:      table,
		Method:     domain.FetchTop,
		Subreddit:  subreddit,
		TimeFilter: filter,
		FetchedAt:  fetchedAt,
	}, nil
}

// FetchHot retrieves the hot submissions of a subreddit. Hot listings carry
// no time filter, so the result's TimeFilter stays zero.
func (s *Scraper) FetchHot(ctx context.Context, subreddit string, limit int) (domain.ScrapeResult, error) {
	fetchedAt := s.now().Format(domain.FetchedAtLayout)

	subs, err := s.collector.HotSubmissions(ctx, subreddit, limit)
	if err != nil {
		return domain.ScrapeResult{}, eris.Wrapf(err, "scraper: hot r/%s", subreddit)
	}

	table, err := buildTable(subs, subreddit)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	zap.L().Debug("fetched hot submissions",
		zap.String("subreddit", subreddit),
		zap.Int("rows", table.Len()),
	)

	return domain.ScrapeResult{
		Table:     table,
		Method:    domain.FetchHot,
		Subreddit: subreddit,
		FetchedAt: fetchedAt,
	}, nil
}

// buildTable normalizes every submission into the fixed-schema table. A
// single invalid submission aborts the whole fetch.
func buildTable(subs []domain.Submission, subreddit string) (domain.Table, error) {
	var b domain.TableBuilder
	for _, sub := range subs {
		row, err := normalize.Row(sub, subreddit)
		if err != nil {
			return domain.Table{}, err
		}
		b.Append(row)
	}
	return b.Build(), nil
}
