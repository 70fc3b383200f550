package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// respondServiceError maps a service-layer error onto the envelope and the
// right status code.
func respondServiceError(c *gin.Context, err error) {
	var invalidAssignees *services.InvalidAssigneesError

	switch {
	case errors.As(err, &invalidAssignees):
		response.BadRequest(c, err.Error())
	case errors.Is(err, policy.ErrAssignRestricted),
		errors.Is(err, policy.ErrStatusOnly),
		errors.Is(err, policy.ErrNotAssigned),
		errors.Is(err, policy.ErrDeleteRestricted),
		errors.Is(err, policy.ErrNotCommentAuthor),
		errors.Is(err, policy.ErrNotFileOwner),
		errors.Is(err, policy.ErrRoleChangeDenied),
		errors.Is(err, policy.ErrRoleChangeSelf):
		response.Forbidden(c, err.Error())
	case errors.Is(err, policy.ErrRoleOutOfAllowance),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrNoTasksProvided),
		errors.Is(err, services.ErrTextRequired),
		errors.Is(err, services.ErrTextTooLong),
		errors.Is(err, services.ErrNoFilesStored):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
