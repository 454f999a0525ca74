package domain

import "time"

// CaseOpening is the result of a case purchase handed to the presentation layer
type CaseOpening struct {
	ID            string    `json:"id"`
	CaseID        string    `json:"case_id"`
	CaseName      string    `json:"case_name"`
	Price         int64     `json:"price"`
	Currency      Currency  `json:"currency"`
	Item          Item      `json:"item"`
	Rarity        Rarity    `json:"rarity"`
	IsNothing     bool      `json:"is_nothing"`
	Draw          float64   `json:"draw"`
	Balances      Balances  `json:"balances"`
	InventorySize int       `json:"inventory_size"`
	OpenedAt      time.Time `json:"opened_at"`
	RevealAt      time.Time `json:"reveal_at"`
}

// BattleResult is the binary outcome of a battle
type BattleResult string

const (
	BattleWin  BattleResult = "win"
	BattleLose BattleResult = "lose"
)

// BattleOutcome is transient; only its effect on EconomyState persists
type BattleOutcome struct {
	ID          string       `json:"id"`
	Result      BattleResult `json:"result"`
	SilverDelta int64        `json:"silver_delta"`
	GoldDelta   int64        `json:"gold_delta"`
	Balances    Balances     `json:"balances"`
	ResolvedAt  time.Time    `json:"resolved_at"`
	RevealAt    time.Time    `json:"reveal_at"`
}

// HarvestReward is the result of a single clicker press
type HarvestReward struct {
	SilverDelta int64    `json:"silver_delta"`
	GoldDelta   int64    `json:"gold_delta"`
	Balances    Balances `json:"balances"`
}
