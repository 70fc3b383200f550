package repository

import (
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
	"gorm.io/gorm"
)

// GormFileRepository is a GORM implementation of FileRepository
type GormFileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

func (r *GormFileRepository) FindByID(id uuid.UUID, preload ...string) (*models.File, error) {
	var file models.File
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByTask returns a task's files, newest first, with uploaders
func (r *GormFileRepository) ListByTask(taskID uuid.UUID) ([]models.File, error) {
	var files []models.File
	if err := r.db.
		Preload("Uploader").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *GormFileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.File{}, "id = ?", id).Error
}
