package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

var ErrUnsupportedContentType = errors.New("unsupported media content type")

// mediaExtensions lists the content types athletes may upload as exercise media.
var mediaExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/heic":      ".heic",
}

// MediaObjectKey builds a fresh object key for media attached to one exercise of a plan:
// exercise-media/{planId}/{sessionId}/{exerciseId}/{uuid}{ext}.
func MediaObjectKey(planID, sessionID, exerciseID, contentType string) (string, error) {
	ext, ok := mediaExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return fmt.Sprintf("exercise-media/%s/%s/%s/%s%s", planID, sessionID, exerciseID, uuid.NewString(), ext), nil
}

// IsMediaKeyOf reports whether key was issued for the given plan exercise.
func IsMediaKeyOf(key, planID, sessionID, exerciseID string) bool {
	return strings.HasPrefix(key, fmt.Sprintf("exercise-media/%s/%s/%s/", planID, sessionID, exerciseID))
}

// IsMediaKeyOfPlan reports whether key was issued for any exercise of the plan.
func IsMediaKeyOfPlan(key, planID string) bool {
	return strings.HasPrefix(key, fmt.Sprintf("exercise-media/%s/", planID))
}
