package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// FileHandler handles file uploads, downloads and metadata.
type FileHandler struct {
	fileService *services.FileService
	httpClient  *http.Client
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload handles POST /api/files/upload. The multipart form carries up to
// ten files under the "files" field, plus an optional task_id.
func (h *FileHandler) Upload(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		response.BadRequest(c, "no files provided")
		return
	}
	if len(parts) > constants.MaxUploadFiles {
		response.BadRequest(c, fmt.Sprintf("too many files, at most %d allowed", constants.MaxUploadFiles))
		return
	}

	var taskID *uuid.UUID
	if raw := c.PostForm("task_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid task id")
			return
		}
		taskID = &id
	}

	inputs := make([]services.UploadInput, 0, len(parts))
	for _, part := range parts {
		if part.Size > constants.MaxUploadFileSize {
			response.BadRequest(c, fmt.Sprintf("file %s exceeds the size limit", part.Filename))
			return
		}
		src, err := part.Open()
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("failed to read file %s", part.Filename))
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("failed to read file %s", part.Filename))
			return
		}
		inputs = append(inputs, services.UploadInput{
			Name:     part.Filename,
			MimeType: part.Header.Get("Content-Type"),
			Size:     part.Size,
			Data:     data,
		})
	}

	files, err := h.fileService.Upload(c.Request.Context(), actor, taskID, inputs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToFileDTOs(files))
}

// ListByTask handles GET /api/files/task/:taskId
func (h *FileHandler) ListByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	files, err := h.fileService.ListByTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToFileDTOs(files))
}

// GetURL handles GET /api/files/:id/url. Only remotely stored files have a
// delivery URL; local files are fetched through the download endpoint.
func (h *FileHandler) GetURL(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid file id")
		return
	}

	file, err := h.fileService.Get(fileID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var url *string
	if file.Provider == models.ProviderCloudinary && file.URL != "" {
		url = &file.URL
	}
	response.OK(c, gin.H{"url": url})
}

// Download handles GET /api/files/:id/download. Local files are streamed
// from disk; remote files are proxied so the caller gets a real attachment
// either way.
func (h *FileHandler) Download(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid file id")
		return
	}

	file, err := h.fileService.Get(fileID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=%q", file.OriginalName)

	if file.Provider == models.ProviderCloudinary {
		upstream, err := h.httpClient.Get(file.URL)
		if err != nil {
			response.BadGateway(c, "failed to fetch file from storage provider")
			return
		}
		defer upstream.Body.Close()
		if upstream.StatusCode != http.StatusOK {
			response.BadGateway(c, "failed to fetch file from storage provider")
			return
		}

		c.Header("Content-Disposition", disposition)
		contentType := file.MimeType
		if contentType == "" {
			contentType = upstream.Header.Get("Content-Type")
		}
		c.DataFromReader(http.StatusOK, upstream.ContentLength, contentType, upstream.Body, nil)
		return
	}

	c.Header("Content-Disposition", disposition)
	c.Header("Content-Type", file.MimeType)
	c.File(file.Path)
}

// Delete handles DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid file id")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), actor, fileID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Message(c, "File deleted")
}
