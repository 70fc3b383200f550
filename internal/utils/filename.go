package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

// GenerateStoredFilename builds a collision-resistant name for a locally
// stored upload, keeping the original extension.
func GenerateStoredFilename(originalName string) (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s%s", hex.EncodeToString(bytes), ext), nil
}
