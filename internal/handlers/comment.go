package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// CommentHandler handles task comments.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	comment, err := h.commentService.Create(actor, taskID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToCommentDTO(comment))
}

// ListByTask handles GET /api/comments/task/:taskId
func (h *CommentHandler) ListByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	comments, err := h.commentService.ListByTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToCommentDTOs(comments))
}

// Update handles PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(actor, commentID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToCommentDTO(comment))
}

// Delete handles DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(actor, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Message(c, "Comment deleted")
}
