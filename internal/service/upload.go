package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/config"
)

// UploadService stores uploaded recipe photos in S3.
type UploadService struct {
	s3Config *config.S3Config
	logger   *zap.Logger
}

// NewUploadService creates a new UploadService instance
func NewUploadService(s3Config *config.S3Config, logger *zap.Logger) *UploadService {
	return &UploadService{
		s3Config: s3Config,
		logger:   logger,
	}
}

// sanitizeExtension derives a filename extension from a MIME type, falling
// back to jpg for anything unusable.
func sanitizeExtension(mimeType string) string {
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) != 2 {
		return "jpg"
	}

	var cleaned strings.Builder
	for _, r := range strings.ToLower(parts[1]) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			cleaned.WriteRune(r)
		}
	}
	if cleaned.Len() == 0 {
		return "jpg"
	}
	return cleaned.String()
}

// SaveImage uploads image bytes and returns the public URL. Non-image content
// types are rejected before anything touches storage.
func (s *UploadService) SaveImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return "", ErrUnsupportedMedia
	}

	key := fmt.Sprintf("uploads/%d-%s.%s", time.Now().UnixMilli(), uuid.New().String(), sanitizeExtension(mimeType))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.logger.Info("image uploaded", zap.String("url", url), zap.Int("bytes", len(data)))
	return url, nil
}
