package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/notify"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title too long")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrNoTasksProvided = errors.New("no tasks provided")
)

// InvalidAssigneesError reports every assignee id that is not an existing
// employee. All offending ids are collected before failing, so a caller can
// fix the whole request in one pass.
type InvalidAssigneesError struct {
	IDs []string
}

func (e *InvalidAssigneesError) Error() string {
	return "invalid assignees: " + strings.Join(e.IDs, ", ")
}

// AssignmentNotifier receives assignment events for asynchronous delivery.
type AssignmentNotifier interface {
	Enqueue(a notify.Assignment)
}

// TaskService implements task business logic on top of the repositories.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier AssignmentNotifier
}

// NewTaskService creates a new TaskService. notifier may be nil, in which
// case assignment notifications are skipped.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifier AssignmentNotifier) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, notifier: notifier}
}

// CreateTaskInput carries the attributes for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	Tags        []string
	AssigneeIDs []uuid.UUID
}

func (in *CreateTaskInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrTitleRequired
	}
	if len(in.Title) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	if in.Status == "" {
		in.Status = models.TaskStatusTodo
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if in.Priority == "" {
		in.Priority = models.TaskPriorityMedium
	}
	if !in.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// validateAssignees deduplicates ids and resolves them to users. Every id
// that does not resolve to an employee is reported in a single error.
func (s *TaskService) validateAssignees(ids []uuid.UUID) ([]uuid.UUID, []models.User, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil, nil
	}

	users, err := s.userRepo.FindByIDs(unique)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve assignees: %w", err)
	}
	byID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var invalid []string
	resolved := make([]models.User, 0, len(unique))
	for _, id := range unique {
		u, ok := byID[id]
		if !ok || u.Role != models.RoleEmployee {
			invalid = append(invalid, id.String())
			continue
		}
		resolved = append(resolved, u)
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, nil, &InvalidAssigneesError{IDs: invalid}
	}
	return unique, resolved, nil
}

// Create stores a new task for the actor. Employees cannot assign, so any
// assignees they send are silently dropped.
func (s *TaskService) Create(actor policy.Actor, input CreateTaskInput) (*models.Task, error) {
	if policy.StripAssigneesOnCreate(actor.Role) {
		input.AssigneeIDs = nil
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	assigneeIDs, assignees, err := s.validateAssignees(input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Tags:        models.StringList(input.Tags),
		CreatorID:   actor.ID,
	}
	for _, id := range assigneeIDs {
		task.Assignments = append(task.Assignments, models.TaskAssignment{UserID: id})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyAssignments(actor, task, assignees)

	return s.Get(task.ID)
}

// BulkCreate validates all inputs before storing anything, then creates the
// whole batch in one transaction.
func (s *TaskService) BulkCreate(actor policy.Actor, inputs []CreateTaskInput) ([]models.Task, error) {
	if len(inputs) == 0 {
		return nil, ErrNoTasksProvided
	}

	tasks := make([]*models.Task, 0, len(inputs))
	notifyFor := make([][]models.User, 0, len(inputs))
	for i := range inputs {
		input := inputs[i]
		if policy.StripAssigneesOnCreate(actor.Role) {
			input.AssigneeIDs = nil
		}
		if err := input.validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		assigneeIDs, assignees, err := s.validateAssignees(input.AssigneeIDs)
		if err != nil {
			var invalid *InvalidAssigneesError
			if errors.As(err, &invalid) {
				return nil, fmt.Errorf("task %d: %w", i+1, invalid)
			}
			return nil, err
		}

		task := &models.Task{
			Title:       input.Title,
			Description: input.Description,
			Status:      input.Status,
			Priority:    input.Priority,
			DueDate:     input.DueDate,
			Tags:        models.StringList(input.Tags),
			CreatorID:   actor.ID,
		}
		for _, id := range assigneeIDs {
			task.Assignments = append(task.Assignments, models.TaskAssignment{UserID: id})
		}
		tasks = append(tasks, task)
		notifyFor = append(notifyFor, assignees)
	}

	if err := s.taskRepo.CreateAll(tasks); err != nil {
		return nil, fmt.Errorf("failed to create tasks: %w", err)
	}

	created := make([]models.Task, 0, len(tasks))
	for i, task := range tasks {
		s.notifyAssignments(actor, task, notifyFor[i])
		full, err := s.Get(task.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, *full)
	}
	return created, nil
}

// UpdateTaskInput carries a partial task update. Fields lists the attribute
// names present in the request, which drives role policy; pointer fields are
// nil when absent.
type UpdateTaskInput struct {
	Fields      []string
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
	Tags        *[]string
	AssigneeIDs *[]uuid.UUID
}

// Update applies a partial update following role policy. Newly added
// assignees are notified when the actor holds a managerial role.
func (s *TaskService) Update(actor policy.Actor, taskID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.AssigneeIDs != nil && !policy.CanAssign(actor.Role) {
		return nil, policy.ErrAssignRestricted
	}
	if err := policy.CanUpdateTask(actor, task, input.Fields); err != nil {
		return nil, err
	}

	previous := make(map[uuid.UUID]struct{}, len(task.Assignments))
	for _, a := range task.Assignments {
		previous[a.UserID] = struct{}{}
	}

	var (
		assigneeIDs []uuid.UUID
		assignees   []models.User
	)
	if input.AssigneeIDs != nil {
		assigneeIDs, assignees, err = s.validateAssignees(*input.AssigneeIDs)
		if err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	} else if input.ClearDue {
		task.DueDate = nil
	}
	if input.Tags != nil {
		task.Tags = models.StringList(*input.Tags)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if input.AssigneeIDs != nil {
		if err := s.taskRepo.ReplaceAssignments(task.ID, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to update assignments: %w", err)
		}

		added := make([]models.User, 0, len(assignees))
		for _, u := range assignees {
			if _, ok := previous[u.ID]; !ok {
				added = append(added, u)
			}
		}
		s.notifyAssignments(actor, task, added)
	}

	return s.Get(task.ID)
}

// Delete soft-deletes a task. Deleting an already deleted task succeeds
// without touching it again.
func (s *TaskService) Delete(actor policy.Actor, taskID uuid.UUID) (*models.Task, error) {
	if err := policy.CanDeleteTask(actor.Role); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByIDUnscoped(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.DeletedAt.Valid {
		return task, nil
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return s.taskRepo.FindByIDUnscoped(taskID)
}

// Get retrieves a live task with its creator and assignees.
func (s *TaskService) Get(taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetFull retrieves a task together with its comments and files.
func (s *TaskService) GetFull(taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID,
		"Creator", "Assignments", "Assignments.User",
		"Comments", "Comments.Author", "Files", "Files.Uploader")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// List returns a filtered, sorted page of tasks with the total match count.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) notifyAssignments(actor policy.Actor, task *models.Task, assignees []models.User) {
	if s.notifier == nil || len(assignees) == 0 {
		return
	}
	assignerName := "A manager"
	if assigner, err := s.userRepo.FindByID(actor.ID); err == nil {
		assignerName = assigner.Name
	}
	for _, u := range assignees {
		s.notifier.Enqueue(notify.Assignment{
			To:            u.Email,
			RecipientName: u.Name,
			TaskTitle:     task.Title,
			TaskID:        task.ID.String(),
			AssignerName:  assignerName,
		})
	}
}
