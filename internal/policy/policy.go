// Package policy is the single place where role-based authorization is
// decided. Every function is a pure decision over (actor, resource, change):
// nil means allow, a package error means deny. Handlers and services must not
// branch on role strings outside this package.
package policy

import (
	"errors"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
)

var (
	ErrAssignRestricted   = errors.New("only managers can assign tasks")
	ErrStatusOnly         = errors.New("employees can only update task status")
	ErrNotAssigned        = errors.New("you can only update tasks assigned to you")
	ErrDeleteRestricted   = errors.New("only managers or admins can delete tasks")
	ErrNotCommentAuthor   = errors.New("you can only modify your own comments unless you are a manager or admin")
	ErrNotFileOwner       = errors.New("only the uploader or an admin can delete this file")
	ErrRoleChangeDenied   = errors.New("not authorized to change roles")
	ErrRoleChangeSelf     = errors.New("cannot change your own role")
	ErrRoleOutOfAllowance = errors.New("invalid role")
)

// Actor is the authenticated user making a request.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// CanAssign reports whether the actor may set or change task assignees.
func CanAssign(role models.Role) bool {
	return role.Managerial()
}

// StripAssigneesOnCreate reports whether assignee input must be silently
// dropped from a create request. Employees may create tasks but never assign
// them; the request itself is not rejected.
func StripAssigneesOnCreate(role models.Role) bool {
	return !role.Managerial()
}

// CanUpdateTask decides a task update given the set of changed field names.
// Managers and admins may change any field. Employees may only touch "status",
// and only on tasks they are currently assigned to; any other field in the
// change set rejects the whole update.
func CanUpdateTask(actor Actor, task *models.Task, changedFields []string) error {
	if actor.Role.Managerial() {
		return nil
	}

	for _, field := range changedFields {
		if field != "status" {
			return ErrStatusOnly
		}
	}

	if !task.HasAssignee(actor.ID) {
		return ErrNotAssigned
	}

	return nil
}

// CanDeleteTask decides soft deletion. Managers and admins only.
func CanDeleteTask(role models.Role) error {
	if role.Managerial() {
		return nil
	}
	return ErrDeleteRestricted
}

// CanModifyComment decides comment edits and deletes: the author, or a
// manager/admin.
func CanModifyComment(actor Actor, authorID uuid.UUID) error {
	if actor.ID == authorID || actor.Role.Managerial() {
		return nil
	}
	return ErrNotCommentAuthor
}

// CanDeleteFile decides file deletion: the uploader, or an admin.
func CanDeleteFile(actor Actor, uploaderID uuid.UUID) error {
	if actor.ID == uploaderID || actor.Role == models.RoleAdmin {
		return nil
	}
	return ErrNotFileOwner
}

// CanChangeRole decides a role change. The actor must be a manager or admin
// and may never change their own role. Managers may only grant employee or
// manager; admins may grant any role.
func CanChangeRole(actor Actor, targetID uuid.UUID, newRole models.Role) error {
	if !actor.Role.Managerial() {
		return ErrRoleChangeDenied
	}
	if actor.ID == targetID {
		return ErrRoleChangeSelf
	}

	switch actor.Role {
	case models.RoleAdmin:
		if newRole.Valid() {
			return nil
		}
	case models.RoleManager:
		if newRole == models.RoleEmployee || newRole == models.RoleManager {
			return nil
		}
	}
	return ErrRoleOutOfAllowance
}
