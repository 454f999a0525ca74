package duel

// ActionBattle is the in-flight key for battles
const ActionBattle = "battle"

// Default reward ranges
const (
	DefaultWinSilverMin  int64 = 500
	DefaultWinSilverMax  int64 = 1500
	DefaultWinGold       int64 = 400
	DefaultLoseSilverMin int64 = 100
	DefaultLoseSilverMax int64 = 400
)

// Error messages
const (
	ErrMsgInvertedRangeFmt  = "%w: %s range [%d, %d] is inverted"
	ErrMsgNegativeRewardFmt = "%w: %s must not be negative"
	ErrMsgBattleFailed      = "battle failed: %w"
)

// Log messages
const (
	LogMsgBattleResolved   = "Battle resolved"
	LogMsgBattleRevealed   = "Battle revealed"
	LogMsgActionInProgress = "Battle already in progress"
	LogMsgBattleRejected   = "Battle rejected"
)
