package dto

import "github.com/taskplatform/task-platform-api/internal/models"

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required,min=2,max=100"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=employee manager admin"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the authenticated user together with a bearer token.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
