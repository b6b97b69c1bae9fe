package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminacoach/lumina/internal/config"
)

type fakePut struct {
	got  *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePut) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.got = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3StorePut(t *testing.T) {
	store := NewS3Store(&config.Config{S3Bucket: "avatars", S3Region: "eu-west-1", S3PublicURL: "https://cdn.example.com/"})
	fake := &fakePut{}
	store.client = fake

	url, err := store.Put(context.Background(), "avatars/p1.webp", []byte("img"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/avatars/p1.webp", url)
	assert.Equal(t, "avatars", aws.ToString(fake.got.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fake.got.ContentType))
	assert.Equal(t, []byte("img"), fake.body)

	fake.err = errors.New("boom")
	_, err = store.Put(context.Background(), "k", nil, "image/webp")
	assert.Error(t, err)
}

func TestDefaultPublicURL(t *testing.T) {
	store := NewS3Store(&config.Config{S3Bucket: "b", S3Region: "us-east-1"})
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com", store.publicURL)
}
