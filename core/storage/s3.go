package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"eventhub/core/config"
	"eventhub/core/logger"
	"eventhub/core/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores user avatars and returns their public URL.
type Uploader interface {
	UploadAvatar(ctx context.Context, userID string, filename string, contentType string, body io.Reader) (string, error)
}

type s3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3 builds an S3-backed uploader from static credentials. When no bucket
// is configured it returns a disabled uploader so the rest of the service
// runs without object storage.
func NewS3(cfg config.StorageConfig) Uploader {
	if cfg.Bucket == "" {
		logger.Warn("S3 bucket not configured, avatar upload disabled")
		return &disabledStorage{}
	}

	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info("S3 storage initialized", "bucket", cfg.Bucket, "region", cfg.Region)
	return &s3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
	}
}

func (s *s3Storage) UploadAvatar(ctx context.Context, userID string, filename string, contentType string, body io.Reader) (string, error) {
	// Random prefix so re-uploads never collide with stale CDN entries.
	key := fmt.Sprintf("avatars/%s/%s%s", userID, utils.GenerateID(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:UploadAvatar", err)
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

type disabledStorage struct{}

func (d *disabledStorage) UploadAvatar(ctx context.Context, userID string, filename string, contentType string, body io.Reader) (string, error) {
	return "", fmt.Errorf("avatar storage is not configured")
}
