package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskAssignment is the canonical assignee set: one row per (task, user).
// The legacy single-assignee API field is folded into this set at the DTO
// boundary.
type TaskAssignment struct {
	TaskID    uuid.UUID `gorm:"type:uuid;primarykey" json:"task_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
