package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"gorm.io/gorm"
)

// UserService implements user directory and role administration logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns users whose name or email matches query, capped at limit.
func (s *UserService) List(query string, limit int) ([]models.User, error) {
	users, err := s.userRepo.List(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ChangeRole sets a user's role subject to the actor's allowance: managers
// may grant employee or manager, admins may grant any role, and nobody may
// change their own.
func (s *UserService) ChangeRole(actor policy.Actor, targetID uuid.UUID, role models.Role) (*models.User, error) {
	if err := policy.CanChangeRole(actor, targetID, role); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
