package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
	"github.com/taskplatform/task-platform-api/internal/utils"
)

// TaskHandler handles task CRUD, listing and bulk creation.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) toCreateInput(req *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	assigneeIDs, err := req.AssigneeIDs()
	if err != nil {
		return services.CreateTaskInput{}, err
	}
	return services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		AssigneeIDs: assigneeIDs,
	}, nil
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input, err := h.toCreateInput(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(actor, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToTaskDTO(task))
}

// BulkCreate handles POST /api/tasks/bulk
func (h *TaskHandler) BulkCreate(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req dto.BulkCreateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inputs := make([]services.CreateTaskInput, 0, len(req.Tasks))
	for i := range req.Tasks {
		input, err := h.toCreateInput(&req.Tasks[i])
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		inputs = append(inputs, input)
	}

	tasks, err := h.taskService.BulkCreate(actor, inputs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, dto.ToTaskDTOs(tasks))
}

// List handles GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	pagination := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sort_by", "created_at"),
		SortDesc: c.DefaultQuery("order", "desc") != "asc",
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		if !s.Valid() {
			response.BadRequest(c, "invalid status")
			return
		}
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		if !p.Valid() {
			response.BadRequest(c, "invalid priority")
			return
		}
		filter.Priority = &p
	}
	if assignee := c.Query("assignee"); assignee != "" {
		id, err := uuid.Parse(assignee)
		if err != nil {
			response.BadRequest(c, "invalid assignee id")
			return
		}
		filter.AssigneeID = &id
	}

	tasks, total, err := h.taskService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OKWithMeta(c, dto.ToTaskDTOs(tasks), response.Meta{
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
		Pages: utils.TotalPages(total, pagination.Limit),
	})
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToTaskDTO(task))
}

// GetFull handles GET /api/tasks/:id/full
func (h *TaskHandler) GetFull(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.GetFull(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToTaskDTOWithDetail(task))
}

// Update handles PUT /api/tasks/:id. The raw body is decoded twice: once
// into a key set, so role policy can see which attributes the caller
// actually sent, and once into the typed request.
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "failed to read request body")
		return
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	var req dto.UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	_, hasAssignee := keys["assignee"]
	_, hasAssignees := keys["assignees"]
	assigneeIDs, err := req.AssigneeIDs(hasAssignee, hasAssignees)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fields := make([]string, 0, len(keys))
	for key := range keys {
		fields = append(fields, key)
	}

	_, hasDueDate := keys["due_date"]
	input := services.UpdateTaskInput{
		Fields:      fields,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ClearDue:    hasDueDate && req.DueDate == nil,
		Tags:        req.Tags,
		AssigneeIDs: assigneeIDs,
	}

	task, err := h.taskService.Update(actor, taskID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, dto.ToTaskDTO(task))
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	if _, err := h.taskService.Delete(actor, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Message(c, "Task deleted")
}
