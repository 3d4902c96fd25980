package collector

import (
	"github.com/rotisserie/eris"

	"github.com/trendlab/subreddit-trends/internal/config"
	"github.com/trendlab/subreddit-trends/internal/domain"
)

// New selects the collector implementation for the configured mode.
func New(cfg config.Config) (domain.Collector, error) {
	switch cfg.Collector.Mode {
	case "api":
		return NewAPIClient(
			cfg.Reddit.ClientID,
			cfg.Reddit.ClientSecret,
			cfg.Reddit.Username,
			cfg.Reddit.Password,
			cfg.Reddit.UserAgent,
		)
	case "public":
		return NewPublicClient(cfg.Reddit.UserAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, eris.Errorf("unknown collector mode: %q (use 'api', 'public', or 'mock')", cfg.Collector.Mode)
	}
}
