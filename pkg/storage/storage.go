package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/roleready/roleready-api/config"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// MaxImageSize is the largest avatar accepted, in bytes.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrInvalidImageType = errors.New("invalid image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStore is what services need from object storage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// S3Client stores objects in an S3-compatible bucket.
type S3Client struct {
	s3Client      *s3.Client
	bucketName    string
	publicBaseURL string
}

var _ ObjectStore = (*S3Client)(nil)

// NewS3Client builds a client from config. Path-style addressing is used so
// MinIO and other S3-compatible endpoints work unchanged.
func NewS3Client(cfg config.StorageConfig) *S3Client {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region:       region,
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		if cfg.Endpoint != "" {
			publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.BucketName
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, region)
		}
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", region))

	return &S3Client{
		s3Client:      s3.New(opts),
		bucketName:    cfg.BucketName,
		publicBaseURL: publicBase,
	}
}

// Upload puts data under key and returns its public URL.
func (c *S3Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	start := time.Now()
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	c.observe("upload", start, err, zap.String("key", key), zap.Int("size_bytes", len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.publicBaseURL + "/" + key, nil
}

// Delete removes key from the bucket.
func (c *S3Client) Delete(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})
	c.observe("delete", start, err, zap.String("key", key))
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// KeyForURL reverses Upload's URL back into an object key. ok is false for
// URLs that do not point into this bucket.
func (c *S3Client) KeyForURL(url string) (string, bool) {
	prefix := c.publicBaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func (c *S3Client) observe(operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil {
		status = "error"
		fields = append(fields, zap.Error(err))
	}
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall("object_storage", operation, status, duration, fields...)
}

// ImageExtension validates contentType and returns the file extension to use.
func ImageExtension(contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: jpeg, png, webp)", ErrInvalidImageType, contentType)
	}
	return ext, nil
}

// ValidateImageSize rejects empty payloads and anything above MaxImageSize.
func ValidateImageSize(size int) error {
	if size == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImageType)
	}
	if size > MaxImageSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrImageTooLarge, size, MaxImageSize)
	}
	return nil
}

// AvatarKey is the object key for a user's avatar.
func AvatarKey(userID, ext string) string {
	return fmt.Sprintf("avatars/%s/%d.%s", userID, time.Now().UnixNano(), ext)
}

// DisabledStore stands in for S3Client when no bucket is configured. Every
// write fails with ErrStorageDisabled.
type DisabledStore struct{}

var _ ObjectStore = DisabledStore{}

func (DisabledStore) Upload(context.Context, string, []byte, string) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledStore) Delete(context.Context, string) error {
	return ErrStorageDisabled
}

func (DisabledStore) KeyForURL(string) (string, bool) {
	return "", false
}
