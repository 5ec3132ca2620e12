package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"matchlake/internal/config"
)

// S3Store implements domain.ObjectStore on S3-compatible object storage.
// It uses the AWS SDK v2, configured with path-style addressing so
// custom endpoints work.
type S3Store struct {
	client *s3.Client
}

// NewS3Store creates a store from the worker configuration.
func NewS3Store(cfg *config.Config) *S3Store {
	opts := s3.Options{
		Region:       cfg.S3Region,
		UsePathStyle: true,
	}
	if cfg.HasS3Credentials() {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3KeyID, cfg.S3Secret, "")
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", cfg.S3Endpoint))
	}
	return &S3Store{client: s3.New(opts)}
}

// Exists reports whether the object is present. Missing objects are not
// an error; anything else (permissions, transport) is.
func (s *S3Store) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// Get fetches the full object body.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put writes the full object body, replacing any previous version.
func (s *S3Store) Put(ctx context.Context, bucket, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
