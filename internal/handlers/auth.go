package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.AuthResponse{User: dto.ToUserDTO(user), Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.AuthResponse{User: dto.ToUserDTO(user), Token: token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToUserDTO(user))
}
