package domain

import "github.com/rotisserie/eris"

// PostType classifies a submission by its media payload.
type PostType string

const (
	PostTypeImageGallery PostType = "image_gallery"
	PostTypeSingleImage  PostType = "single_image"
	PostTypeOther        PostType = "other"
)

// FetchMethod is the ranking strategy used to request submissions.
type FetchMethod string

const (
	FetchTop FetchMethod = "top"
	FetchHot FetchMethod = "hot"
)

// TimeFilter is the lookback window for ranking strategies that support one.
// The zero value means no filter applies, as with hot listings.
type TimeFilter string

const (
	TimeFilterHour  TimeFilter = "hour"
	TimeFilterDay   TimeFilter = "day"
	TimeFilterWeek  TimeFilter = "week"
	TimeFilterMonth TimeFilter = "month"
	TimeFilterYear  TimeFilter = "year"
	TimeFilterAll   TimeFilter = "all"
)

// ParseFetchMethod converts a string into a FetchMethod.
func ParseFetchMethod(s string) (FetchMethod, error) {
	switch FetchMethod(s) {
	case FetchTop, FetchHot:
		return FetchMethod(s), nil
	default:
		return "", eris.Errorf("unknown fetch method: %q (valid: top, hot)", s)
	}
}

// ParseTimeFilter converts a string into a TimeFilter.
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch TimeFilter(s) {
	case TimeFilterHour, TimeFilterDay, TimeFilterWeek, TimeFilterMonth, TimeFilterYear, TimeFilterAll:
		return TimeFilter(s), nil
	default:
		return "", eris.Errorf("unknown time filter: %q (valid: hour, day, week, month, year, all)", s)
	}
}
