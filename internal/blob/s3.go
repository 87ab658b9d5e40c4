package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Store stores blobs in an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

// S3Options configures the S3-compatible endpoint.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Secure    bool
}

// NewS3Store builds a store backed by an S3-compatible object service.
func NewS3Store(opts S3Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Region: opts.Region,
		Secure: opts.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &S3Store{client: client, bucket: opts.Bucket}, nil
}

// Put uploads data under its content hash. Re-uploading an existing key
// overwrites it with identical bytes, which preserves idempotency.
func (s *S3Store) Put(ctx context.Context, hash string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, hash,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to store blob %s: %w", hash, err)
	}
	return nil
}
