// Package blobstore stores product images in any bucket supported by the Go
// CDK: local directories (file://), memory (mem://) and S3 (s3://).
package blobstore

import (
	"context"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

type BucketStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Open opens the bucket at bucketURL. Objects are later addressed as
// publicBaseURL + "/" + key.
func Open(ctx context.Context, bucketURL, publicBaseURL string) (*BucketStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	return NewBucketStorage(bucket, publicBaseURL), nil
}

func NewBucketStorage(bucket *blob.Bucket, publicBaseURL string) *BucketStorage {
	return &BucketStorage{bucket: bucket, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *BucketStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errs.WrapDependency("object storage", err)
	}
	return s.publicBaseURL + "/" + key, nil
}

func (s *BucketStorage) Close() error {
	return s.bucket.Close()
}
