package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrTextRequired    = errors.New("comment text is required")
	ErrTextTooLong     = errors.New("comment text too long")
)

// CommentService implements comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, taskRepo: taskRepo}
}

func validateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrTextRequired
	}
	if len(text) > constants.MaxCommentLength {
		return "", ErrTextTooLong
	}
	return text, nil
}

// Create adds a comment to a live task.
func (s *CommentService) Create(actor policy.Actor, taskID uuid.UUID, text string) (*models.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		Text:     text,
		TaskID:   taskID,
		AuthorID: actor.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return s.get(comment.ID)
}

// ListByTask returns a task's comments in chronological order.
func (s *CommentService) ListByTask(taskID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Update rewrites a comment's text. Only the author or a managerial role may
// edit it.
func (s *CommentService) Update(actor policy.Actor, commentID uuid.UUID, text string) (*models.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	comment, err := s.get(commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyComment(actor, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return s.get(commentID)
}

// Delete removes a comment under the same policy as Update.
func (s *CommentService) Delete(actor policy.Actor, commentID uuid.UUID) error {
	comment, err := s.get(commentID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyComment(actor, comment.AuthorID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) get(commentID uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}
