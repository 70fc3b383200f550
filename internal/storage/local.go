package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskplatform/task-platform-api/internal/utils"
)

// LocalStore writes uploads to a directory on disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error) {
	filename, err := utils.GenerateStoredFilename(originalName)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Filename: filename,
		Path:     path,
		Provider: "local",
	}, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref StoredFile) error {
	if ref.Path == "" {
		return nil
	}
	if err := os.Remove(ref.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
