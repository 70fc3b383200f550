package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
