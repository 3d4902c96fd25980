package collector

import (
	"context"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// APIClient fetches listings through the authenticated reddit API wrapper.
//
// The wrapper does not expose gallery metadata or post hints, so every
// submission fetched this way classifies as "other". Use the public client
// when image counts matter.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

// NewAPIClient requires script-app credentials and a userAgent string to
// comply with Reddit's API rules.
func NewAPIClient(id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, eris.Wrap(err, "api: create client")
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter}, nil
}

func (ac *APIClient) TopSubmissions(ctx context.Context, sub string, filter domain.TimeFilter, limit int) ([]domain.Submission, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &reddit.ListPostOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Time:        string(filter),
	}
	posts, _, err := ac.client.Subreddit.TopPosts(ctx, sub, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "api: top r/%s", sub)
	}
	return mapPosts(posts), nil
}

func (ac *APIClient) HotSubmissions(ctx context.Context, sub string, limit int) ([]domain.Submission, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, eris.Wrapf(err, "api: hot r/%s", sub)
	}
	return mapPosts(posts), nil
}

// mapPosts converts wrapper posts into the raw submission view. Fields the
// wrapper does not carry (gallery data, post hint) keep their zero values.
func mapPosts(posts []*reddit.Post) []domain.Submission {
	subs := make([]domain.Submission, 0, len(posts))
	for _, p := range posts {
		subs = append(subs, domain.Submission{
			ID:          p.ID,
			URL:         p.URL,
			Permalink:   p.Permalink,
			Subreddit:   p.SubredditName,
			Author:      p.Author,
			Title:       p.Title,
			CreatedUTC:  float64(p.Created.Time.Unix()),
			Score:       int64(p.Score),
			NumComments: int64(p.NumberOfComments),
			UpvoteRatio: float64(p.UpvoteRatio),
		})
	}
	return subs
}
