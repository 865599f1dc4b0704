package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/storage"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func newStorage(t *testing.T, client storage.S3Client) *storage.S3Storage {
	t.Helper()
	s, err := storage.New(context.Background(), storage.Config{
		Bucket: "growthlab-assets",
		Region: "us-east-1",
	}, storage.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNew_RequiresBucketAndRegion(t *testing.T) {
	t.Parallel()

	_, err := storage.New(context.Background(), storage.Config{})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("returns public URL on success", func(t *testing.T) {
		t.Parallel()
		client := new(mockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "growthlab-assets" && *in.Key == "articles/intro/hero.png"
		})).Return(&s3.PutObjectOutput{}, nil)

		s := newStorage(t, client)
		url, err := s.Upload(context.Background(), "/articles/intro/hero.png", "image/png", []byte{0x89})
		require.NoError(t, err)
		assert.Equal(t, "https://growthlab-assets.s3.us-east-1.amazonaws.com/articles/intro/hero.png", url)
		client.AssertExpectations(t)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()
		s := newStorage(t, new(mockS3Client))
		_, err := s.Upload(context.Background(), "", "image/png", nil)
		assert.ErrorIs(t, err, storage.ErrEmptyKey)
	})

	t.Run("wraps transport failure", func(t *testing.T) {
		t.Parallel()
		client := new(mockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))

		s := newStorage(t, client)
		_, err := s.Upload(context.Background(), "k", "image/png", nil)
		assert.Error(t, err)
	})
}

func TestExists(t *testing.T) {
	t.Parallel()

	client := new(mockS3Client)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "present"
	})).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "absent"
	})).Return(nil, errors.New("NotFound"))

	s := newStorage(t, client)
	assert.True(t, s.Exists(context.Background(), "present"))
	assert.False(t, s.Exists(context.Background(), "absent"))
}
