package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
)

// CreateCommentRequest is the payload for adding a comment to a task.
type CreateCommentRequest struct {
	TaskID string `json:"task_id" binding:"required,uuid"`
	Text   string `json:"text" binding:"required,max=2000"`
}

// UpdateCommentRequest is the payload for editing a comment.
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// CommentDTO is the public shape of a comment.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	TaskID    uuid.UUID `json:"task_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Author    *UserDTO  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCommentDTO converts a comment model to its public shape.
func ToCommentDTO(comment *models.Comment) CommentDTO {
	out := CommentDTO{
		ID:        comment.ID,
		Text:      comment.Text,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.Author.ID != uuid.Nil {
		author := ToUserDTO(&comment.Author)
		out.Author = &author
	}
	return out
}

// ToCommentDTOs converts a slice of comment models.
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, ToCommentDTO(&comments[i]))
	}
	return out
}
