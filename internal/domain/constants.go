package domain

// Persisted key names. The layout is a flat string-keyed store.
const (
	KeySilver    = "silver"
	KeyGold      = "gold"
	KeyInventory = "inventory"
	KeyUser      = "user"
)

// EconomyKeys lists every key owned by the economy store, in write order.
var EconomyKeys = []string{KeySilver, KeyGold, KeyInventory}

// Starting balances used when no prior record exists
const (
	DefaultSilver int64 = 5000
	DefaultGold   int64 = 1000
)

// Event type names published by the core services
const (
	EventTypeCaseOpened       = "case.opened"
	EventTypeCaseRevealed     = "case.revealed"
	EventTypeBattleResolved   = "battle.resolved"
	EventTypeHarvestCollected = "harvest.collected"
	EventTypeUserLoggedIn     = "user.logged_in"
	EventTypeUserLoggedOut    = "user.logged_out"
)
