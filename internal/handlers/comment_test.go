package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/models"
)

func TestCommentHandler_CreateAndList(t *testing.T) {
	env := setupTestEnv(t)
	manager, managerToken := env.createUser(t, "manager", models.RoleManager)
	employee, employeeToken := env.createUser(t, "employee", models.RoleEmployee)
	task := env.createTask(t, manager.ID, "Discussed work", employee.ID)

	w := env.request(t, http.MethodPost, "/api/comments", employeeToken, map[string]string{
		"task_id": task.ID.String(),
		"text":    "Working on it",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment dto.CommentDTO
	decodeData(t, w, &comment)
	require.Equal(t, employee.ID, comment.AuthorID)

	w = env.request(t, http.MethodPost, "/api/comments", managerToken, map[string]string{
		"task_id": task.ID.String(),
		"text":    "Thanks for the update",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/comments/task/"+task.ID.String(), managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []dto.CommentDTO
	decodeData(t, w, &comments)
	require.Len(t, comments, 2)
	// chronological order
	require.Equal(t, "Working on it", comments[0].Text)
	require.NotNil(t, comments[0].Author)
}

func TestCommentHandler_CreateUnknownTask(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "manager", models.RoleManager)

	w := env.request(t, http.MethodPost, "/api/comments", token, map[string]string{
		"task_id": uuid.NewString(),
		"text":    "Lost comment",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler_CreateTooLong(t *testing.T) {
	env := setupTestEnv(t)
	manager, token := env.createUser(t, "manager", models.RoleManager)
	task := env.createTask(t, manager.ID, "Quiet work")

	w := env.request(t, http.MethodPost, "/api/comments", token, map[string]string{
		"task_id": task.ID.String(),
		"text":    strings.Repeat("a", 2001),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentHandler_UpdateByAuthor(t *testing.T) {
	env := setupTestEnv(t)
	manager, _ := env.createUser(t, "manager", models.RoleManager)
	employee, token := env.createUser(t, "employee", models.RoleEmployee)
	task := env.createTask(t, manager.ID, "Work", employee.ID)

	comment := &models.Comment{Text: "draft", TaskID: task.ID, AuthorID: employee.ID}
	require.NoError(t, env.db.Create(comment).Error)

	w := env.request(t, http.MethodPut, "/api/comments/"+comment.ID.String(), token, map[string]string{
		"text": "final",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.CommentDTO
	decodeData(t, w, &got)
	require.Equal(t, "final", got.Text)
}

func TestCommentHandler_UpdateByStrangerForbidden(t *testing.T) {
	env := setupTestEnv(t)
	manager, _ := env.createUser(t, "manager", models.RoleManager)
	author, _ := env.createUser(t, "author", models.RoleEmployee)
	_, strangerToken := env.createUser(t, "stranger", models.RoleEmployee)
	task := env.createTask(t, manager.ID, "Work")

	comment := &models.Comment{Text: "mine", TaskID: task.ID, AuthorID: author.ID}
	require.NoError(t, env.db.Create(comment).Error)

	w := env.request(t, http.MethodPut, "/api/comments/"+comment.ID.String(), strangerToken, map[string]string{
		"text": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommentHandler_DeleteByManager(t *testing.T) {
	env := setupTestEnv(t)
	manager, managerToken := env.createUser(t, "manager", models.RoleManager)
	author, _ := env.createUser(t, "author", models.RoleEmployee)
	task := env.createTask(t, manager.ID, "Work")

	comment := &models.Comment{Text: "off topic", TaskID: task.ID, AuthorID: author.ID}
	require.NoError(t, env.db.Create(comment).Error)

	w := env.request(t, http.MethodDelete, "/api/comments/"+comment.ID.String(), managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.Zero(t, count)
}
