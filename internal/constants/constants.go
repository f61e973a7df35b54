package constants

// Session
const (
	SessionCookieName = "softdesk_session"
	ContextKeyUserID  = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 8
	MinUserAge        = 15
	MaxTitleLength    = 155
	MaxTypeLength     = 12
)

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
