package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/catalog"
	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/storage"
)

// saveResult persists a scrape result to the chosen backend and records the
// save in the catalog. A catalog failure after a successful save is logged,
// not fatal: the parquet data is already durable.
func saveResult(ctx context.Context, result domain.ScrapeResult, choice string) error {
	backend, err := storage.New(ctx, *cfg, result.Subreddit, choice)
	if err != nil {
		return err
	}

	if err := backend.Save(ctx, result); err != nil {
		return err
	}

	location := backend.Location(result)
	zap.L().Info("scrape saved",
		zap.String("subreddit", result.Subreddit),
		zap.String("method", string(result.Method)),
		zap.Int("rows", result.Table.Len()),
		zap.String("backend", backend.Name()),
		zap.String("location", location),
	)
	fmt.Printf("Saved %d row(s) to %s (%s)\n", result.Table.Len(), location, backend.Name())

	recordScrape(ctx, result, backend.Name(), location)
	return nil
}

func recordScrape(ctx context.Context, result domain.ScrapeResult, backend, location string) {
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		zap.L().Warn("catalog unavailable", zap.Error(err))
		return
	}
	defer cat.Close()

	if err := cat.Migrate(ctx); err != nil {
		zap.L().Warn("catalog migrate failed", zap.Error(err))
		return
	}
	if _, err := cat.Record(ctx, result, backend, location); err != nil {
		zap.L().Warn("catalog record failed", zap.Error(err))
	}
}
