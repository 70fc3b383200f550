package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Pagination bounds for task listing.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const MinPasswordLength = 6

const (
	MinTitleLength = 1
	MaxTitleLength = 200

	MinCommentLength = 1
	MaxCommentLength = 2000
)

// Upload limits, per file and per request.
const (
	MaxUploadFiles    = 10
	MaxUploadFileSize = 50 << 20
)

const (
	DefaultTrendDays    = 30
	TopCreatorsLimit    = 10
	DefaultUserListSize = 50
)
