package constant

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in_progress"
	TodoStatusCompleted  = "completed"

	TodoPriorityLow    = "low"
	TodoPriorityMedium = "medium"
	TodoPriorityHigh   = "high"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	MaxTitleLength    = 255
	MinPasswordLength = 8
	MinSecretLength   = 32
)
