package user

// Mock identity defaults
const (
	DefaultNamePrefix = "Player "
	DefaultEmail      = "player@simulator.com"
	DefaultPicture    = "https://cdn.poehali.dev/files/1000595009.jpg"

	// Generated names use a number in [0, maxGeneratedSuffix)
	maxGeneratedSuffix = 9999

	MaxNameLength = 64
)

const (
	ErrMsgDecodeIdentity = "%w: identity record: %w"
	ErrMsgEncodeIdentity = "failed to encode identity: %w"
	ErrMsgNameTooLong    = "%w: name longer than %d characters"

	LogMsgLoggedIn       = "User logged in"
	LogMsgLoggedOut      = "User logged out"
	LogMsgRestored       = "User session restored"
	LogMsgNoSession      = "No stored user session"
	LogMsgCorruptSession = "Stored user session unreadable, ignoring"
)
