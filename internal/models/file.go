package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StorageProvider string

const (
	ProviderLocal      StorageProvider = "local"
	ProviderCloudinary StorageProvider = "cloudinary"
)

type File struct {
	ID           uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	Filename     string          `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string          `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType     string          `gorm:"type:varchar(127)" json:"mime_type"`
	Size         int64           `json:"size"`
	Path         string          `gorm:"type:varchar(512)" json:"path,omitempty"`
	URL          string          `gorm:"type:varchar(1024)" json:"url,omitempty"`
	PublicID     string          `gorm:"type:varchar(255)" json:"public_id,omitempty"`
	Provider     StorageProvider `gorm:"type:varchar(20);not null;default:'local'" json:"provider"`
	UploaderID   uuid.UUID       `gorm:"type:uuid;not null" json:"uploader_id"`
	TaskID       *uuid.UUID      `gorm:"type:uuid;index" json:"task_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Uploader User `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
