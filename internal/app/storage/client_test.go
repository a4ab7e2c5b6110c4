package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) StorageService {
	t.Helper()

	svc, err := NewStorageService(context.Background(), ServiceConfig{
		S3BucketName:      "content",
		S3Endpoint:        "http://localhost:9000",
		S3AccessKeyID:     "test-access-key",
		S3SecretAccessKey: "test-secret-key",
	})
	require.NoError(t, err)
	return svc
}

func TestPresignUpload(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.PresignUpload(context.Background(), "user-1/file.pdf", "application/pdf", 1024, 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/content/user-1/file.pdf", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignDownload(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.PresignDownload(context.Background(), "user-1/file.pdf", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/content/user-1/file.pdf", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}
