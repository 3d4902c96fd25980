package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

const publicBaseURL = "https://www.reddit.com"

// PublicClient fetches listings from reddit's unauthenticated JSON
// endpoints. This is the only mode that surfaces the full submission field
// set, gallery metadata and post hints included.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

// listing is the envelope of one public listing response.
type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data domain.Submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewPublicClient requires a descriptive user agent; reddit throttles the
// default Go one aggressively.
func NewPublicClient(userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, eris.New("public: user agent is required")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   publicBaseURL,
	}, nil
}

func (pc *PublicClient) TopSubmissions(ctx context.Context, sub string, filter domain.TimeFilter, limit int) ([]domain.Submission, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if filter != "" {
		q.Set("t", string(filter))
	}
	return pc.fetch(ctx, sub, domain.FetchTop, q)
}

func (pc *PublicClient) HotSubmissions(ctx context.Context, sub string, limit int) ([]domain.Submission, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return pc.fetch(ctx, sub, domain.FetchHot, q)
}

func (pc *PublicClient) fetch(ctx context.Context, sub string, method domain.FetchMethod, q url.Values) ([]domain.Submission, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/r/%s/%s.json?%s", pc.baseURL, sub, method, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "public: create request")
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "public: fetch %s r/%s", method, sub)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("public: fetch %s r/%s: status %d", method, sub, resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, eris.Wrapf(err, "public: decode %s r/%s", method, sub)
	}

	subs := make([]domain.Submission, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		subs = append(subs, child.Data)
	}
	return subs, nil
}
