package storage

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// Key derivation and the empty-result guard run before any network I/O, so
// they are testable against a bare struct.

func TestMinioObjectKeyLayout(t *testing.T) {
	m := &Minio{bucket: "programming"}
	result := topResult()

	assert.Equal(t, "programming/top/day/20240315_143001.parquet", m.objectKey(result))
	assert.Equal(t, "programming/programming/top/day/20240315_143001.parquet", m.Location(result))
}

func TestMinioObjectKeySentinel(t *testing.T) {
	m := &Minio{bucket: "programming"}
	result := hotResult()

	assert.Equal(t, "programming/hot/at_point_in_time/20240315_143001.parquet", m.objectKey(result))
	assert.Equal(t, domain.TimeFilter(""), result.TimeFilter)
}

func TestMinioObjectKeyDeterministic(t *testing.T) {
	m := &Minio{bucket: "pics"}
	result := topResult()
	result.Subreddit = "pics"

	assert.Equal(t, m.objectKey(result), m.objectKey(result))

	later := result
	later.FetchedAt = "20240315_150000"
	assert.NotEqual(t, m.objectKey(result), m.objectKey(later))
}

func TestMinioSaveEmptyResult(t *testing.T) {
	m := &Minio{bucket: "programming"}

	result := topResult()
	result.Table = domain.NewTable(nil)

	err := m.Save(context.Background(), result)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyResult))
}

func TestMinioName(t *testing.T) {
	assert.Equal(t, "minio", (&Minio{}).Name())
}
