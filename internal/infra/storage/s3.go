package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/luminacoach/lumina/internal/config"
)

// ObjectStore stores public objects and returns their URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client    putObjectAPI
	bucket    string
	publicURL string
}

// NewS3Store builds a client from static credentials. S3_ENDPOINT allows
// S3-compatible services (MinIO, R2) with path-style addressing.
func NewS3Store(cfg *config.Config) *S3Store {
	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
