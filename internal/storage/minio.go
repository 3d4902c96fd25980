package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/config"
	"github.com/trendlab/subreddit-trends/internal/domain"
)

// parquetContentType tags uploads as generic binary data.
const parquetContentType = "application/octet-stream"

// Minio uploads scrape results to an S3-compatible object store. The bucket
// carries the subreddit name and is provisioned at construction, so a
// backend that exists can always save.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to the object store and ensures the bucket exists.
// Credential problems surface as authentication failures from the store
// itself, on this first call.
func NewMinio(ctx context.Context, cfg config.MinioConfig, bucket string) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "minio: connect %s", cfg.Endpoint)
	}

	m := &Minio{client: client, bucket: bucket}
	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ensureBucket provisions the destination bucket idempotently: create when
// absent, succeed quietly when present.
func (m *Minio) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return eris.Wrapf(ErrProvisioning, "minio: check bucket %s: %v", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return eris.Wrapf(ErrProvisioning, "minio: create bucket %s: %v", m.bucket, err)
	}
	zap.L().Info("created bucket", zap.String("bucket", m.bucket))
	return nil
}

func (m *Minio) Name() string { return "minio" }

// Location returns <bucket>/<subreddit>/<method>/<filter>/<ts>.parquet.
func (m *Minio) Location(result domain.ScrapeResult) string {
	return m.bucket + "/" + m.objectKey(result)
}

// objectKey renders the hierarchical object name, with the sentinel in
// place of a missing filter.
func (m *Minio) objectKey(result domain.ScrapeResult) string {
	return fmt.Sprintf("%s/%s/%s/%s.parquet",
		result.Subreddit, result.Method, timeFilterSegment(result), result.FetchedAt)
}

// Save uploads the serialized table as one atomic put.
func (m *Minio) Save(ctx context.Context, result domain.ScrapeResult) error {
	if result.Table.Empty() {
		return ErrEmptyResult
	}

	data, err := MarshalTable(result.Table)
	if err != nil {
		return err
	}

	key := m.objectKey(result)
	_, err = m.client.PutObject(ctx, m.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: parquetContentType})
	if err != nil {
		return eris.Wrapf(err, "minio: put %s/%s", m.bucket, key)
	}

	zap.L().Debug("uploaded parquet object",
		zap.String("bucket", m.bucket),
		zap.String("key", key),
		zap.Int("rows", result.Table.Len()),
		zap.Int("bytes", len(data)),
	)
	return nil
}
