package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidCaseID         = "Invalid case id"
	ErrMsgInvalidWaitParam      = "Invalid wait parameter, expected true or false"

	// Operation failure messages used in logs
	ErrMsgOpenCaseFailed = "Open case"
	ErrMsgBattleFailed   = "Battle"
	ErrMsgHarvestFailed  = "Harvest"
	ErrMsgLoginFailed    = "Login"
	ErrMsgLogoutFailed   = "Logout"
	ErrMsgGetCaseFailed  = "Get case"
)

// Success messages for API responses
const (
	MsgLoggedOut     = "Logged out"
	MsgRevealPending = "Outcome will be revealed at reveal_at"
)

// Log messages
const (
	LogMsgServiceError    = "Service call failed"
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgWaitInterrupted = "Client stopped waiting for reveal"
	LogMsgReadyzFailed    = "Readiness check failed"
)
