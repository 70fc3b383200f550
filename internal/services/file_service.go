package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"github.com/taskplatform/task-platform-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrNoFilesStored  = errors.New("no files could be stored")
	ErrFileTypeDenied = errors.New("file type not allowed")
)

// allowedMimeTypes is the upload allowlist: common images, documents and
// archives.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"application/zip":              true,
	"application/x-rar-compressed": true,
}

// FileService stores upload bytes through a storage.Store and keeps their
// metadata in the database. When a remote store is configured it wins over
// local disk for new uploads; removal always follows the record's provider.
type FileService struct {
	fileRepo repository.FileRepository
	taskRepo repository.TaskRepository
	local    storage.Store
	remote   storage.Store
}

// NewFileService creates a new FileService. remote may be nil when no remote
// provider is configured.
func NewFileService(fileRepo repository.FileRepository, taskRepo repository.TaskRepository, local, remote storage.Store) *FileService {
	return &FileService{fileRepo: fileRepo, taskRepo: taskRepo, local: local, remote: remote}
}

// UploadInput is one file from a multipart upload.
type UploadInput struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// Upload stores a batch of files. Each file succeeds or fails on its own;
// the call errors only when not a single file could be stored.
func (s *FileService) Upload(ctx context.Context, actor policy.Actor, taskID *uuid.UUID, files []UploadInput) ([]models.File, error) {
	if taskID != nil {
		if _, err := s.taskRepo.FindByID(*taskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
	}

	store := s.local
	if s.remote != nil {
		store = s.remote
	}

	var stored []models.File
	for _, f := range files {
		if !allowedMimeTypes[f.MimeType] {
			slog.Warn("rejected upload", "name", f.Name, "mime_type", f.MimeType)
			continue
		}

		result, err := store.Save(ctx, f.Name, f.Data)
		if err != nil {
			slog.Error("failed to store upload", "name", f.Name, "error", err)
			continue
		}

		record := &models.File{
			Filename:     result.Filename,
			OriginalName: f.Name,
			MimeType:     f.MimeType,
			Size:         f.Size,
			Path:         result.Path,
			URL:          result.URL,
			PublicID:     result.PublicID,
			Provider:     models.StorageProvider(result.Provider),
			UploaderID:   actor.ID,
			TaskID:       taskID,
		}
		if err := s.fileRepo.Create(record); err != nil {
			slog.Error("failed to record upload", "name", f.Name, "error", err)
			continue
		}
		stored = append(stored, *record)
	}

	if len(stored) == 0 {
		return nil, ErrNoFilesStored
	}
	return stored, nil
}

// ListByTask returns a task's files, newest first.
func (s *FileService) ListByTask(taskID uuid.UUID) ([]models.File, error) {
	files, err := s.fileRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// Get retrieves a file record by ID.
func (s *FileService) Get(fileID uuid.UUID) (*models.File, error) {
	file, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}
	return file, nil
}

// Delete removes a file record and, best-effort, its stored bytes. Only the
// uploader or an admin may delete a file.
func (s *FileService) Delete(ctx context.Context, actor policy.Actor, fileID uuid.UUID) error {
	file, err := s.Get(fileID)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteFile(actor, file.UploaderID); err != nil {
		return err
	}

	ref := storage.StoredFile{
		Filename: file.Filename,
		Path:     file.Path,
		URL:      file.URL,
		PublicID: file.PublicID,
		Provider: string(file.Provider),
	}
	store := s.storeFor(file.Provider)
	if store == nil {
		slog.Warn("no store configured for provider, skipping cleanup", "provider", file.Provider, "file_id", file.ID)
	} else if err := store.Remove(ctx, ref); err != nil {
		slog.Error("failed to remove stored bytes", "file_id", file.ID, "error", err)
	}

	if err := s.fileRepo.Delete(fileID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FileService) storeFor(provider models.StorageProvider) storage.Store {
	switch provider {
	case models.ProviderCloudinary:
		return s.remote
	default:
		return s.local
	}
}
