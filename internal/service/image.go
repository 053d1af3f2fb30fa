package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hireachef/backend/config"
)

const maxImageBytes = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var ErrUnsupportedImageType = errors.New("unsupported image type")
var ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", maxImageBytes)

// ImageService stores uploaded profile pictures and gallery images in
// S3. A nil s3Config disables uploads, which keeps local development
// and mock mode free of AWS credentials.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Enabled reports whether uploads are configured.
func (s *ImageService) Enabled() bool {
	return s != nil && s.s3Config != nil && s.s3Config.Client != nil
}

// Upload validates the image and stores it under the given folder,
// returning the public URL.
func (s *ImageService) Upload(ctx context.Context, folder, originalName string, data []byte) (string, error) {
	if !s.Enabled() {
		return "", errors.New("image uploads are not configured")
	}
	if len(data) > maxImageBytes {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		// Fall back to content sniffing for files without an extension.
		contentType = http.DetectContentType(data)
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		default:
			return "", ErrUnsupportedImageType
		}
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] uploaded %s", publicURL)
	return publicURL, nil
}
