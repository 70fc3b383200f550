package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// UserHandler handles the user directory and role administration.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultUserListSize)))
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultUserListSize
	}

	query := c.Query("q")
	if query == "" {
		query = c.Query("search")
	}

	users, err := h.userService.List(query, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToUserDTOs(users))
}

// UpdateRole handles PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.ChangeRole(actor, targetID, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToUserDTO(user))
}
