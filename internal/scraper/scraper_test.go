package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/normalize"
)

// staticCollector serves canned submissions and records the arguments of
// the last call.
type staticCollector struct {
	subs []domain.Submission
	err  error

	gotSubreddit string
	gotFilter    domain.TimeFilter
	gotLimit     int
}

func (c *staticCollector) TopSubmissions(_ context.Context, subreddit string, filter domain.TimeFilter, limit int) ([]domain.Submission, error) {
	c.gotSubreddit, c.gotFilter, c.gotLimit = subreddit, filter, limit
	return c.subs, c.err
}

func (c *staticCollector) HotSubmissions(_ context.Context, subreddit string, limit int) ([]domain.Submission, error) {
	c.gotSubreddit, c.gotLimit = subreddit, limit
	return c.subs, c.err
}

func testSubmission(id string) domain.Submission {
	return domain.Submission{
		ID:          id,
		URL:         "https://example.com/" + id,
		Permalink:   "/r/programming/comments/" + id + "/post/",
		Subreddit:   "programming",
		Author:      "gopher",
		Title:       "Post " + id,
		CreatedUTC:  1700000000,
		Score:       10,
		NumComments: 2,
		UpvoteRatio: 0.9,
	}
}

func newTestScraper(c domain.Collector) *Scraper {
	s := New(c)
	s.now = func() time.Time {
		return time.Date(2024, 3, 15, 14, 30, 1, 0, time.UTC)
	}
	return s
}

func TestFetchTop(t *testing.T) {
	col := &staticCollector{subs: []domain.Submission{testSubmission("a1"), testSubmission("a2")}}
	s := newTestScraper(col)

	result, err := s.FetchTop(context.Background(), "programming", domain.TimeFilterDay, 25)
	require.NoError(t, err)

	assert.Equal(t, "programming", col.gotSubreddit)
	assert.Equal(t, domain.TimeFilterDay, col.gotFilter)
	assert.Equal(t, 25, col.gotLimit)

	assert.Equal(t, domain.FetchTop, result.Method)
	assert.Equal(t, "programming", result.Subreddit)
	assert.Equal(t, domain.TimeFilterDay, result.TimeFilter)
	assert.Equal(t, "20240315_143001", result.FetchedAt)

	require.Equal(t, 2, result.Table.Len())
	assert.Equal(t, "a1", result.Table.Rows()[0].ID)
	assert.Equal(t, "a2", result.Table.Rows()[1].ID)
}

func TestFetchHot(t *testing.T) {
	col := &staticCollector{subs: []domain.Submission{testSubmission("b1")}}
	s := newTestScraper(col)

	result, err := s.FetchHot(context.Background(), "golang", 5)
	require.NoError(t, err)

	assert.Equal(t, domain.FetchHot, result.Method)
	assert.Equal(t, domain.TimeFilter(""), result.TimeFilter, "hot results carry no time filter")
	assert.Equal(t, "20240315_143001", result.FetchedAt)
	assert.Equal(t, 1, result.Table.Len())
}

func TestFetchEmptyListing(t *testing.T) {
	s := newTestScraper(&staticCollector{})

	result, err := s.FetchHot(context.Background(), "quietplace", 10)
	require.NoError(t, err)

	assert.True(t, result.Table.Empty())
	assert.Equal(t, "quietplace", result.Subreddit)
	assert.NotEmpty(t, result.FetchedAt)
}

func TestFetchCollectorError(t *testing.T) {
	boom := eris.New("listing unavailable")
	s := newTestScraper(&staticCollector{err: boom})

	_, err := s.FetchTop(context.Background(), "programming", domain.TimeFilterWeek, 10)
	require.Error(t, err)
	assert.True(t, eris.Is(err, boom))
	assert.Contains(t, err.Error(), "top r/programming")
}

func TestFetchInvalidSubmissionAborts(t *testing.T) {
	bad := testSubmission("c1")
	bad.Title = ""
	col := &staticCollector{subs: []domain.Submission{testSubmission("c0"), bad}}
	s := newTestScraper(col)

	_, err := s.FetchTop(context.Background(), "programming", domain.TimeFilterAll, 10)
	require.Error(t, err)
	assert.True(t, eris.Is(err, normalize.ErrInvalidSubmission))
}
