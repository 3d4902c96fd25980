// Package normalize converts raw submissions into typed table rows.
package normalize

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// ErrInvalidSubmission marks a raw submission that cannot be coerced into a
// table row because a required field is missing. The whole fetch fails on
// it; rows are never silently skipped or padded.
var ErrInvalidSubmission = eris.New("invalid submission")

// deletedAuthor is how the listing API renders removed accounts.
const deletedAuthor = "[deleted]"

// postHintImage marks a direct single-image link.
const postHintImage = "image"

// Row converts one raw submission into a normalized row of the fixed table
// schema. The subreddit argument names the collection that was queried and
// becomes the row's subreddit column. Pure: identical input always yields
// an identical row.
func Row(raw domain.Submission, subreddit string) (domain.Row, error) {
	if err := validate(raw); err != nil {
		return domain.Row{}, err
	}

	postType, numImages := classify(raw)

	return domain.Row{
		ID:          raw.ID,
		URL:         raw.URL,
		Permalink:   raw.Permalink,
		Subreddit:   subreddit,
		Author:      author(raw.Author),
		Title:       raw.Title,
		CreatedAt:   time.Unix(int64(raw.CreatedUTC), 0),
		PostType:    postType,
		Score:       raw.Score,
		NumComments: raw.NumComments,
		IsGallery:   raw.IsGallery,
		NumOfImages: numImages,
		UpvoteRatio: raw.UpvoteRatio,
	}, nil
}

func validate(raw domain.Submission) error {
	switch {
	case raw.ID == "":
		return eris.Wrap(ErrInvalidSubmission, "normalize: missing id")
	case raw.Title == "":
		return eris.Wrapf(ErrInvalidSubmission, "normalize: submission %s: missing title", raw.ID)
	case raw.URL == "":
		return eris.Wrapf(ErrInvalidSubmission, "normalize: submission %s: missing url", raw.ID)
	case raw.Permalink == "":
		return eris.Wrapf(ErrInvalidSubmission, "normalize: submission %s: missing permalink", raw.ID)
	case raw.CreatedUTC <= 0:
		return eris.Wrapf(ErrInvalidSubmission, "normalize: submission %s: missing created_utc", raw.ID)
	}
	return nil
}

// classify decides post type and image count in strict priority order:
// gallery flag first, then an image post hint, then other.
func classify(raw domain.Submission) (domain.PostType, int64) {
	switch {
	case raw.IsGallery:
		if raw.GalleryData == nil {
			return domain.PostTypeImageGallery, 0
		}
		return domain.PostTypeImageGallery, int64(len(raw.GalleryData.Items))
	case raw.PostHint == postHintImage:
		return domain.PostTypeSingleImage, 1
	default:
		return domain.PostTypeOther, 0
	}
}

// author maps the raw account name to a nullable column value. Removed or
// absent accounts become NULL rather than a placeholder string.
func author(name string) *string {
	if name == "" || name == deletedAuthor {
		return nil
	}
	return &name
}
