/*
Package content holds the rules for user-shared learning content uploads:
which files are accepted and where they are stored.
*/
package content

import (
	"path/filepath"
	"strings"
	"time"

	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/randx"
)

const (
	// MaxUploadSizeMB is the maximum accepted upload size in megabytes.
	MaxUploadSizeMB = 50

	// MaxUploadSize is MaxUploadSizeMB in bytes.
	MaxUploadSize = MaxUploadSizeMB * 1024 * 1024

	// UploadURLDuration is how long a presigned upload URL stays valid.
	UploadURLDuration = 10 * time.Minute

	// DownloadURLDuration is how long a presigned download URL stays valid.
	DownloadURLDuration = 5 * time.Minute
)

// ExtToMIME maps accepted file extensions to their only accepted MIME type.
var ExtToMIME = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// ValidateFileSize checks 0 < fileSize <= MaxUploadSize.
func ValidateFileSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxUploadSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}

// ValidateFileType checks that fileName's extension is accepted and
// matches mimeType.
func ValidateFileType(fileName string, mimeType string) *errs.CustomError {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expected, ok := ExtToMIME[ext]
	if !ok || expected != strings.ToLower(strings.TrimSpace(mimeType)) {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

// ObjectKey returns the storage key for an upload by userID.
func ObjectKey(userID, fileName string) string {
	return randx.ObjectKey(userID, fileName)
}

// IsValidKey reports whether key has the shape produced by ObjectKey.
// Shared content is readable by every signed-in user, so this is the only
// check applied before presigning a download.
func IsValidKey(key string) bool {
	owner, name, ok := strings.Cut(key, "/")
	if !ok || owner == "" || owner == ".." || strings.Contains(name, "/") {
		return false
	}

	ext := filepath.Ext(name)
	if _, ok := ExtToMIME[ext]; !ok {
		return false
	}

	return randx.IsValidUUID(strings.TrimSuffix(name, ext))
}
