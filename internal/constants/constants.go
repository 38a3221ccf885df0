package constants

// Session
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
)

// Validation
const (
	MinPasswordLength = 8
)

// AI task generation
const (
	MaxAIGeneratedTasks = 20
)
