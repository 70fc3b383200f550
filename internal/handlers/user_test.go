package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/models"
)

func TestUserHandler_List(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "alice", models.RoleManager)
	env.createUser(t, "bob", models.RoleEmployee)
	env.createUser(t, "carol", models.RoleEmployee)

	w := env.request(t, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	decodeData(t, w, &users)
	require.Len(t, users, 3)

	w = env.request(t, http.MethodGet, "/api/users?q=bob", token, nil)
	decodeData(t, w, &users)
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Name)

	// search is accepted as an alias for q
	w = env.request(t, http.MethodGet, "/api/users?search=carol", token, nil)
	decodeData(t, w, &users)
	require.Len(t, users, 1)
	require.Equal(t, "carol", users[0].Name)
}

func TestUserHandler_ListRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_UpdateRoleByManager(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "manager", models.RoleManager)
	target, _ := env.createUser(t, "worker", models.RoleEmployee)

	w := env.request(t, http.MethodPatch, "/api/users/"+target.ID.String()+"/role", token, map[string]string{
		"role": "manager",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.UserDTO
	decodeData(t, w, &got)
	require.Equal(t, models.RoleManager, got.Role)
}

func TestUserHandler_ManagerCannotGrantAdmin(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "manager", models.RoleManager)
	target, _ := env.createUser(t, "worker", models.RoleEmployee)

	w := env.request(t, http.MethodPatch, "/api/users/"+target.ID.String()+"/role", token, map[string]string{
		"role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_AdminCanGrantAdmin(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "root", models.RoleAdmin)
	target, _ := env.createUser(t, "worker", models.RoleEmployee)

	w := env.request(t, http.MethodPatch, "/api/users/"+target.ID.String()+"/role", token, map[string]string{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_CannotChangeOwnRole(t *testing.T) {
	env := setupTestEnv(t)
	admin, token := env.createUser(t, "root", models.RoleAdmin)

	w := env.request(t, http.MethodPatch, "/api/users/"+admin.ID.String()+"/role", token, map[string]string{
		"role": "employee",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_EmployeeCannotChangeRoles(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "worker", models.RoleEmployee)
	target, _ := env.createUser(t, "peer", models.RoleEmployee)

	w := env.request(t, http.MethodPatch, "/api/users/"+target.ID.String()+"/role", token, map[string]string{
		"role": "manager",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}
