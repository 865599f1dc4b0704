package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client defines the subset of S3 operations used by S3Storage.
// Narrowed to an interface so tests can substitute a mock client.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Config contains configuration for S3-backed asset storage.
type Config struct {
	Bucket         string `env:"S3_BUCKET,required"`
	Region         string `env:"S3_REGION,required"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`         // Optional: for S3-compatible services
	BaseURL        string `env:"S3_BASE_URL"`         // Public URL base for serving files
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
}

// S3Storage uploads migrated assets to S3 or an S3-compatible service.
// It is safe for concurrent use.
type S3Storage struct {
	client  S3Client
	bucket  string
	baseURL string
}

// Option configures S3Storage construction.
type Option func(*options)

type options struct {
	s3Client S3Client
}

// WithS3Client sets a custom pre-configured S3 client. Useful for testing.
func WithS3Client(client S3Client) Option {
	return func(o *options) { o.s3Client = client }
}

// New creates S3-backed asset storage.
func New(ctx context.Context, cfg Config, opts ...Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(opt *s3.Options) {
			if cfg.Endpoint != "" {
				opt.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			opt.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	baseURL = strings.TrimSuffix(baseURL, "/") + "/"

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores data under key and returns the public URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classifyS3Error(err, "upload")
	}

	return s.URL(key), nil
}

// Exists reports whether an object is already stored under key.
// Lets the importer skip re-uploading assets on repeated runs.
func (s *S3Storage) Exists(ctx context.Context, key string) bool {
	key = strings.TrimPrefix(key, "/")
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL returns the public URL for an object key.
func (s *S3Storage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

// classifyS3Error converts S3 errors to domain-specific errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
