package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
)

// CreateTaskRequest is the payload for creating a task. Assignees may be
// given either as the single legacy assignee field or as the assignees
// list; both feed the same set.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in-progress done archived"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time          `json:"due_date"`
	Assignee    *string             `json:"assignee"`
	Assignees   []string            `json:"assignees"`
	Tags        []string            `json:"tags"`
}

// AssigneeIDs merges the legacy single assignee with the assignees list
// into one deduplicated id set.
func (r *CreateTaskRequest) AssigneeIDs() ([]uuid.UUID, error) {
	return mergeAssigneeIDs(r.Assignee, r.Assignees)
}

// BulkCreateTasksRequest wraps a batch of task creations.
type BulkCreateTasksRequest struct {
	Tasks []CreateTaskRequest `json:"tasks" binding:"required,min=1,dive"`
}

// UpdateTaskRequest is the payload for a partial task update. Handlers pair
// it with the raw body to learn which keys were actually sent.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" binding:"omitempty,max=200"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in-progress done archived"`
	Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"due_date"`
	Assignee    *string              `json:"assignee"`
	Assignees   *[]string            `json:"assignees"`
	Tags        *[]string            `json:"tags"`
}

// AssigneeIDs reports the merged assignee set and whether either assignee
// key was present.
func (r *UpdateTaskRequest) AssigneeIDs(hasAssignee, hasAssignees bool) (*[]uuid.UUID, error) {
	if !hasAssignee && !hasAssignees {
		return nil, nil
	}
	var single *string
	if hasAssignee {
		single = r.Assignee
	}
	var list []string
	if hasAssignees && r.Assignees != nil {
		list = *r.Assignees
	}
	ids, err := mergeAssigneeIDs(single, list)
	if err != nil {
		return nil, err
	}
	return &ids, nil
}

func mergeAssigneeIDs(single *string, list []string) ([]uuid.UUID, error) {
	raw := make([]string, 0, len(list)+1)
	if single != nil && *single != "" {
		raw = append(raw, *single)
	}
	raw = append(raw, list...)

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee id: %s", s)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// TaskDTO is the public shape of a task. Assignee mirrors the first entry of
// Assignees for callers still on the single-assignee field.
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	Tags        []string            `json:"tags"`
	CreatorID   uuid.UUID           `json:"creator_id"`
	Creator     *UserDTO            `json:"creator,omitempty"`
	Assignee    *uuid.UUID          `json:"assignee"`
	Assignees   []UserDTO           `json:"assignees"`
	Deleted     bool                `json:"deleted"`
	DeletedAt   *time.Time          `json:"deleted_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Comments    []CommentDTO        `json:"comments,omitempty"`
	Files       []FileDTO           `json:"files,omitempty"`
}

// ToTaskDTO converts a task model to its public shape.
func ToTaskDTO(task *models.Task) TaskDTO {
	out := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Tags:        []string(task.Tags),
		CreatorID:   task.CreatorID,
		Assignees:   make([]UserDTO, 0, len(task.Assignments)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if task.Creator.ID != uuid.Nil {
		creator := ToUserDTO(&task.Creator)
		out.Creator = &creator
	}
	for i := range task.Assignments {
		a := &task.Assignments[i]
		if i == 0 {
			id := a.UserID
			out.Assignee = &id
		}
		if a.User.ID != uuid.Nil {
			out.Assignees = append(out.Assignees, ToUserDTO(&a.User))
		}
	}
	if task.DeletedAt.Valid {
		out.Deleted = true
		deletedAt := task.DeletedAt.Time
		out.DeletedAt = &deletedAt
	}
	return out
}

// ToTaskDTOWithDetail additionally embeds the task's comments and files.
func ToTaskDTOWithDetail(task *models.Task) TaskDTO {
	out := ToTaskDTO(task)
	out.Comments = ToCommentDTOs(task.Comments)
	out.Files = ToFileDTOs(task.Files)
	return out
}

// ToTaskDTOs converts a slice of task models.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskDTO(&tasks[i]))
	}
	return out
}
