package lootbox

// ActionOpenCase is the in-flight key shared by every case. Only one case
// opening may be awaiting its reveal at a time.
const ActionOpenCase = "open_case"

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgCaseNotPurchasable = "%w: case %q is priced in %s"
	ErrMsgOpenFailed         = "failed to open case %q: %w"
	ErrMsgSelectFailed       = "failed to select drop for case %q: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCaseOpened       = "Case opened"
	LogMsgCaseRevealed     = "Case revealed"
	LogMsgOpenRejected     = "Case opening rejected"
	LogMsgActionInProgress = "Case opening already in progress"
)
