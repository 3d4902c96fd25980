package domain

import (
	"context"
	"time"
)

// Target represents one batch scraping task
type Target struct {
	Subreddit  string
	Method     FetchMethod
	TimeFilter TimeFilter
}

// GalleryItem is a single image entry inside a gallery submission.
type GalleryItem struct {
	MediaID string `json:"media_id"`
	ID      int64  `json:"id"`
}

// GalleryData holds the image collection of a gallery submission.
type GalleryData struct {
	Items []GalleryItem `json:"items"`
}

// Submission is the raw view of one submission as the listing API returns
// it. Optional fields keep their zero value when the API omits them; deleted
// accounts show up as "" or "[deleted]" in Author.
type Submission struct {
	ID          string       `json:"id"`
	URL         string       `json:"url"`
	Permalink   string       `json:"permalink"`
	Subreddit   string       `json:"subreddit"`
	Author      string       `json:"author"`
	Title       string       `json:"title"`
	CreatedUTC  float64      `json:"created_utc"`
	Score       int64        `json:"score"`
	NumComments int64        `json:"num_comments"`
	IsGallery   bool         `json:"is_gallery"`
	GalleryData *GalleryData `json:"gallery_data,omitempty"`
	PostHint    string       `json:"post_hint,omitempty"`
	UpvoteRatio float64      `json:"upvote_ratio"`
}

// Row is one normalized row of the output table. The column set and order
// are fixed by this struct; every storage backend writes the same parquet
// schema.
//
// CreatedAt is derived from the submission's epoch seconds on the machine's
// local clock, at second precision. No timezone normalization is applied.
type Row struct {
	ID          string    `parquet:"id" json:"id"`
	URL         string    `parquet:"url" json:"url"`
	Permalink   string    `parquet:"permalink" json:"permalink"`
	Subreddit   string    `parquet:"subreddit" json:"subreddit"`
	Author      *string   `parquet:"author,optional" json:"author,omitempty"`
	Title       string    `parquet:"title" json:"title"`
	CreatedAt   time.Time `parquet:"created_at" json:"created_at"`
	PostType    PostType  `parquet:"post_type" json:"post_type"`
	Score       int64     `parquet:"score" json:"score"`
	NumComments int64     `parquet:"num_comments" json:"num_comments"`
	IsGallery   bool      `parquet:"is_gallery" json:"is_gallery"`
	NumOfImages int64     `parquet:"num_of_images" json:"num_of_images"`
	UpvoteRatio float64   `parquet:"upvote_ratio" json:"upvote_ratio"`
}

// Collector defines the interface for data fetching
type Collector interface {
	TopSubmissions(ctx context.Context, subreddit string, filter TimeFilter, limit int) ([]Submission, error)
	HotSubmissions(ctx context.Context, subreddit string, limit int) ([]Submission, error)
}
