package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskplatform/task-platform-api/internal/models"
)

func taskAssignedTo(ids ...uuid.UUID) *models.Task {
	task := &models.Task{ID: uuid.New()}
	for _, id := range ids {
		task.Assignments = append(task.Assignments, models.TaskAssignment{TaskID: task.ID, UserID: id})
	}
	return task
}

func TestStripAssigneesOnCreate(t *testing.T) {
	assert.True(t, StripAssigneesOnCreate(models.RoleEmployee))
	assert.False(t, StripAssigneesOnCreate(models.RoleManager))
	assert.False(t, StripAssigneesOnCreate(models.RoleAdmin))
}

func TestCanUpdateTask(t *testing.T) {
	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}
	manager := Actor{ID: uuid.New(), Role: models.RoleManager}

	tests := []struct {
		name    string
		actor   Actor
		task    *models.Task
		changed []string
		want    error
	}{
		{
			name:    "manager may change any field",
			actor:   manager,
			task:    taskAssignedTo(),
			changed: []string{"title", "priority", "assignees"},
			want:    nil,
		},
		{
			name:    "assigned employee may change status",
			actor:   employee,
			task:    taskAssignedTo(employee.ID),
			changed: []string{"status"},
			want:    nil,
		},
		{
			name:    "employee with extra field is rejected even with valid status",
			actor:   employee,
			task:    taskAssignedTo(employee.ID),
			changed: []string{"status", "priority"},
			want:    ErrStatusOnly,
		},
		{
			name:    "unassigned employee cannot change status",
			actor:   employee,
			task:    taskAssignedTo(uuid.New()),
			changed: []string{"status"},
			want:    ErrNotAssigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpdateTask(tt.actor, tt.task, tt.changed)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCanDeleteTask(t *testing.T) {
	assert.ErrorIs(t, CanDeleteTask(models.RoleEmployee), ErrDeleteRestricted)
	assert.NoError(t, CanDeleteTask(models.RoleManager))
	assert.NoError(t, CanDeleteTask(models.RoleAdmin))
}

func TestCanModifyComment(t *testing.T) {
	author := uuid.New()

	assert.NoError(t, CanModifyComment(Actor{ID: author, Role: models.RoleEmployee}, author))
	assert.NoError(t, CanModifyComment(Actor{ID: uuid.New(), Role: models.RoleManager}, author))
	assert.ErrorIs(t, CanModifyComment(Actor{ID: uuid.New(), Role: models.RoleEmployee}, author), ErrNotCommentAuthor)
}

func TestCanDeleteFile(t *testing.T) {
	uploader := uuid.New()

	assert.NoError(t, CanDeleteFile(Actor{ID: uploader, Role: models.RoleEmployee}, uploader))
	assert.NoError(t, CanDeleteFile(Actor{ID: uuid.New(), Role: models.RoleAdmin}, uploader))
	// Managers are deliberately excluded from file deletion.
	assert.ErrorIs(t, CanDeleteFile(Actor{ID: uuid.New(), Role: models.RoleManager}, uploader), ErrNotFileOwner)
}

func TestCanChangeRole(t *testing.T) {
	manager := Actor{ID: uuid.New(), Role: models.RoleManager}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}
	target := uuid.New()

	assert.ErrorIs(t, CanChangeRole(employee, target, models.RoleManager), ErrRoleChangeDenied)
	assert.ErrorIs(t, CanChangeRole(manager, manager.ID, models.RoleEmployee), ErrRoleChangeSelf)

	assert.NoError(t, CanChangeRole(manager, target, models.RoleEmployee))
	assert.NoError(t, CanChangeRole(manager, target, models.RoleManager))
	assert.ErrorIs(t, CanChangeRole(manager, target, models.RoleAdmin), ErrRoleOutOfAllowance)

	assert.NoError(t, CanChangeRole(admin, target, models.RoleAdmin))
	assert.ErrorIs(t, CanChangeRole(admin, target, models.Role("superuser")), ErrRoleOutOfAllowance)
}
