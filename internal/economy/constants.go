package economy

// ==================== Error Messages ====================

// Formatted error messages
const (
	ErrMsgInsufficientFmt   = "%w: %s balance %d, need %d"
	ErrMsgNegativeAmountFmt = "%w: %s amount %d"
	ErrMsgOverflowFmt       = "%w: %s credit of %d overflows balance %d"
	ErrMsgUnknownCurrency   = "%w: unknown currency %q"
	ErrMsgDecodeBalanceFmt  = "%w: %s value %q"
	ErrMsgDecodeInventory   = "%w: inventory: %w"
	ErrMsgEncodeInventory   = "failed to encode inventory: %w"
	ErrMsgPersistFailed     = "failed to persist economy state: %w"
	ErrMsgLoadFailed        = "failed to load economy state: %w"
	ErrMsgNegativeBalance   = "%w: negative balance"
)

// ==================== Log Messages ====================

const (
	LogMsgStateLoaded      = "Economy state loaded"
	LogMsgStatePersisted   = "Economy state persisted"
	LogMsgPersistFailed    = "Failed to persist economy state; keeping previous state"
	LogMsgDefaultsUsed     = "No persisted value, using default"
	LogMsgStateSaved       = "Economy state overwritten"
	LogMsgMutationRejected = "Economy mutation rejected"
	LogMsgOutcomeStaged    = "Outcome committed, hidden until reveal"
	LogMsgCorruptKeys      = "Unreadable persisted values replaced by defaults"
)
