package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task along with its assignment rows
	Create(task *models.Task) error

	// CreateAll inserts a batch of tasks atomically
	CreateAll(tasks []*models.Task) error

	// FindByID finds a non-deleted task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// FindByIDUnscoped finds a task by ID including soft-deleted ones
	FindByIDUnscoped(id uuid.UUID) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task's own columns
	Update(task *models.Task) error

	// ReplaceAssignments swaps the task's assignee set for the given user IDs
	ReplaceAssignments(taskID uuid.UUID, userIDs []uuid.UUID) error

	// Delete soft deletes a task
	Delete(id uuid.UUID) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uuid.UUID
	Search     string
	SortBy     string
	SortDesc   bool
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users matching the given IDs
	FindByIDs(ids []uuid.UUID) ([]models.User, error)

	// List returns users matching an optional name/email substring
	List(query string, limit int) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uuid.UUID, preload ...string) (*models.Comment, error)

	// ListByTask returns a task's comments in chronological order
	ListByTask(taskID uuid.UUID) ([]models.Comment, error)

	Update(comment *models.Comment) error
	Delete(id uuid.UUID) error
}

// FileRepository defines the interface for file metadata access
type FileRepository interface {
	Create(file *models.File) error
	FindByID(id uuid.UUID, preload ...string) (*models.File, error)

	// ListByTask returns a task's files, newest first
	ListByTask(taskID uuid.UUID) ([]models.File, error)

	Delete(id uuid.UUID) error
}

// StatusCount is one bucket of the per-status aggregate.
type StatusCount struct {
	Status models.TaskStatus `json:"status"`
	Count  int64             `json:"count"`
}

// PriorityCount is one bucket of the per-priority aggregate.
type PriorityCount struct {
	Priority models.TaskPriority `json:"priority"`
	Count    int64               `json:"count"`
}

// CreatorStat is one row of the top-creators ranking.
type CreatorStat struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Created   int64     `json:"created"`
	Completed int64     `json:"completed"`
}

// DayCount is one raw row of the created-per-day aggregate. Day is the
// calendar date as reported by the database; callers normalize it.
type DayCount struct {
	Day   string
	Count int64
}

// AnalyticsRepository defines the aggregation queries over tasks
type AnalyticsRepository interface {
	// CountTasks counts non-deleted tasks, optionally scoped to an assignee
	CountTasks(assigneeID *uuid.UUID) (int64, error)

	// CountByStatus groups non-deleted tasks by status
	CountByStatus(assigneeID *uuid.UUID) ([]StatusCount, error)

	// CountByPriority groups non-deleted tasks by priority
	CountByPriority(assigneeID *uuid.UUID) ([]PriorityCount, error)

	// TopCreators ranks creators by created count, with completed counts
	TopCreators(limit int) ([]CreatorStat, error)

	// CreatedPerDay counts tasks created per calendar day since from
	CreatedPerDay(from time.Time, assigneeID *uuid.UUID) ([]DayCount, error)

	// ExportTasks returns non-deleted tasks for CSV export with creator and
	// assignees populated
	ExportTasks(status *models.TaskStatus, assigneeID *uuid.UUID) ([]models.Task, error)
}
