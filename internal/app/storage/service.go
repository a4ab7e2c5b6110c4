/*
Package storage presigns object storage URLs for user-shared content.
The service never proxies file bytes: clients upload and download directly
against the bucket with the URLs it hands out.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the S3-compatible bucket connection settings.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService presigns upload and download URLs.
type StorageService interface {
	// PresignUpload returns a URL accepting a PUT of exactly fileSize bytes of mimeType at key.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload returns a URL serving the object at key.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)
}

// NewStorageService returns the S3-backed StorageService.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	return newS3Client(ctx, cfg)
}
