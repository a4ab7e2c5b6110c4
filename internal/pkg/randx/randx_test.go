package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("user-1", "Lecture Notes.PDF")

	assert.True(t, strings.HasPrefix(key, "user-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	id := strings.TrimSuffix(strings.TrimPrefix(key, "user-1/"), ".pdf")
	assert.True(t, IsValidUUID(id))

	assert.NotEqual(t, key, ObjectKey("user-1", "Lecture Notes.PDF"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID(ID()))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"))
	assert.False(t, IsValidUUID(""))
}
