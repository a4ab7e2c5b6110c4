package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexora/internal/pkg/errs"
)

func TestValidateFileSize(t *testing.T) {
	assert.Nil(t, ValidateFileSize(1))
	assert.Nil(t, ValidateFileSize(MaxUploadSize))

	err := ValidateFileSize(0)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrInvalidParams, err.Code)

	err = ValidateFileSize(MaxUploadSize + 1)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrFileSizeTooLarge, err.Code)
}

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		ok       bool
	}{
		{"pdf", "notes.pdf", "application/pdf", true},
		{"uppercase extension", "NOTES.PDF", "application/pdf", true},
		{"mime case", "clip.mp4", "Video/MP4", true},
		{"mismatch", "notes.pdf", "image/png", false},
		{"unknown extension", "run.exe", "application/octet-stream", false},
		{"no extension", "notes", "application/pdf", false},
		{"dot only", "notes.", "application/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileType(tt.fileName, tt.mimeType)
			if tt.ok {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, errs.ErrFileTypeInvalid, err.Code)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("user-1", "slides.pptx")

	assert.True(t, strings.HasSuffix(key, ".pptx"))
	assert.True(t, strings.HasPrefix(key, "user-1/"))
	assert.True(t, IsValidKey(key))

	assert.False(t, IsValidKey("user-1/notes.pdf"))
	assert.False(t, IsValidKey("user-1/../"+strings.TrimPrefix(key, "user-1/")))
	assert.False(t, IsValidKey(strings.TrimPrefix(key, "user-1/")))
	assert.False(t, IsValidKey("/"+strings.TrimPrefix(key, "user-1/")))
	assert.False(t, IsValidKey(strings.TrimSuffix(key, ".pptx")+".exe"))
}
