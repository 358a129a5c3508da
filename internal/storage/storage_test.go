package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaObjectKey(t *testing.T) {
	key, err := MediaObjectKey("plan1", "S-AAAAAA", "E-BBBBBB", "Video/MP4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "exercise-media/plan1/S-AAAAAA/E-BBBBBB/"))
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.True(t, IsMediaKeyOf(key, "plan1", "S-AAAAAA", "E-BBBBBB"))
	assert.False(t, IsMediaKeyOf(key, "plan1", "S-AAAAAA", "E-CCCCCC"))

	other, err := MediaObjectKey("plan1", "S-AAAAAA", "E-BBBBBB", "video/mp4")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = MediaObjectKey("plan1", "S-AAAAAA", "E-BBBBBB", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestS3Storage_PresignedURLs(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "media",
		PresignExpiry:   5 * time.Minute,
	})
	require.NoError(t, err)

	put, err := fs.GeneratePresignedUploadURL(context.Background(), "exercise-media/p/s/e/x.mp4", "video/mp4", 0)
	require.NoError(t, err)
	u, err := url.Parse(put)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/media/exercise-media/p/s/e/x.mp4", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))

	get, err := fs.GeneratePresignedDownloadURL(context.Background(), "exercise-media/p/s/e/x.mp4", time.Minute)
	require.NoError(t, err)
	u, err = url.Parse(get)
	require.NoError(t, err)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
