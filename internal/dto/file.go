package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
)

// FileDTO is the public shape of a file record.
type FileDTO struct {
	ID           uuid.UUID              `json:"id"`
	Filename     string                 `json:"filename"`
	OriginalName string                 `json:"original_name"`
	MimeType     string                 `json:"mime_type"`
	Size         int64                  `json:"size"`
	URL          string                 `json:"url,omitempty"`
	Provider     models.StorageProvider `json:"provider"`
	UploaderID   uuid.UUID              `json:"uploader_id"`
	Uploader     *UserDTO               `json:"uploader,omitempty"`
	TaskID       *uuid.UUID             `json:"task_id"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ToFileDTO converts a file model to its public shape.
func ToFileDTO(file *models.File) FileDTO {
	out := FileDTO{
		ID:           file.ID,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		Size:         file.Size,
		URL:          file.URL,
		Provider:     file.Provider,
		UploaderID:   file.UploaderID,
		TaskID:       file.TaskID,
		CreatedAt:    file.CreatedAt,
	}
	if file.Uploader.ID != uuid.Nil {
		uploader := ToUserDTO(&file.Uploader)
		out.Uploader = &uploader
	}
	return out
}

// ToFileDTOs converts a slice of file models.
func ToFileDTOs(files []models.File) []FileDTO {
	out := make([]FileDTO, 0, len(files))
	for i := range files {
		out = append(out, ToFileDTO(&files[i]))
	}
	return out
}
