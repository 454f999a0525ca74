package sse

import (
	"time"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

// CaseRevealedPayload is what a front end needs to finish the case animation
type CaseRevealedPayload struct {
	OpeningID string          `json:"opening_id"`
	CaseID    string          `json:"case_id"`
	Item      domain.Item     `json:"item"`
	IsNothing bool            `json:"is_nothing"`
	Balances  domain.Balances `json:"balances"`
	RevealAt  time.Time       `json:"reveal_at"`
}

// BattleResolvedPayload discloses a battle result
type BattleResolvedPayload struct {
	BattleID    string              `json:"battle_id"`
	Result      domain.BattleResult `json:"result"`
	SilverDelta int64               `json:"silver_delta"`
	GoldDelta   int64               `json:"gold_delta"`
	Balances    domain.Balances     `json:"balances"`
}

// HarvestCollectedPayload reports a clicker reward
type HarvestCollectedPayload struct {
	SilverDelta int64           `json:"silver_delta"`
	GoldDelta   int64           `json:"gold_delta"`
	Balances    domain.Balances `json:"balances"`
}
