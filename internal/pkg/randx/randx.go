/*
Package randx generates random identifiers: UUID based object keys for
uploaded files and record ids.
*/
package randx

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ID returns a new random UUID v4 string.
func ID() string {
	return uuid.New().String()
}

// ObjectKey returns "<owner>/<uuid><ext>" where ext is the lowercased
// extension of fileName, so uploads from one owner never collide and the
// client-supplied name never reaches the storage path.
func ObjectKey(owner, fileName string) string {
	return owner + "/" + ID() + strings.ToLower(filepath.Ext(fileName))
}

// IsValidUUID reports whether s is a canonical UUID string.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
