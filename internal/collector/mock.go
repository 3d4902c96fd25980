package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// MockClient implements domain.Collector but returns fake data. The payload
// shape is deterministic for a given subreddit and limit: every third
// submission is a two-image gallery, every third a single image, the rest
// plain links.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) TopSubmissions(ctx context.Context, sub string, filter domain.TimeFilter, limit int) ([]domain.Submission, error) {
	return mc.submissions(sub, limit), nil
}

func (mc *MockClient) HotSubmissions(ctx context.Context, sub string, limit int) ([]domain.Submission, error) {
	return mc.submissions(sub, limit), nil
}

func (mc *MockClient) submissions(sub string, limit int) []domain.Submission {
	subs := make([]domain.Submission, 0, limit)
	for i := 0; i < limit; i++ {
		s := domain.Submission{
			ID:          fmt.Sprintf("mock_%s_%d", sub, i),
			URL:         fmt.Sprintf("http://localhost/mock/%s/%d", sub, i),
			Permalink:   fmt.Sprintf("/r/%s/comments/mock_%d/simulated/", sub, i),
			Subreddit:   sub,
			Author:      "simulated_user",
			Title:       fmt.Sprintf("[%s] Simulated Submission #%d", sub, i),
			CreatedUTC:  float64(time.Now().Unix()),
			Score:       int64(100 + i*7),
			NumComments: int64(10 + i),
			UpvoteRatio: 0.97,
		}
		switch i % 3 {
		case 1:
			s.IsGallery = true
			s.GalleryData = &domain.GalleryData{Items: []domain.GalleryItem{
				{MediaID: fmt.Sprintf("media_%d_a", i)},
				{MediaID: fmt.Sprintf("media_%d_b", i)},
			}}
		case 2:
			s.PostHint = "image"
		}
		subs = append(subs, s)
	}
	return subs
}
