package duel

import (
	"fmt"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/selector"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// Config holds the battle reward ranges. Silver ranges are inclusive.
type Config struct {
	WinSilverMin  int64
	WinSilverMax  int64
	WinGold       int64
	LoseSilverMin int64
	LoseSilverMax int64
}

// DefaultConfig returns the standard reward ranges
func DefaultConfig() Config {
	return Config{
		WinSilverMin:  DefaultWinSilverMin,
		WinSilverMax:  DefaultWinSilverMax,
		WinGold:       DefaultWinGold,
		LoseSilverMin: DefaultLoseSilverMin,
		LoseSilverMax: DefaultLoseSilverMax,
	}
}

// Validate rejects negative rewards and inverted ranges
func (c Config) Validate() error {
	for name, v := range map[string]int64{
		"win silver min":  c.WinSilverMin,
		"win gold":        c.WinGold,
		"lose silver min": c.LoseSilverMin,
	} {
		if v < 0 {
			return fmt.Errorf(ErrMsgNegativeRewardFmt, domain.ErrInvalidInput, name)
		}
	}
	if c.WinSilverMin > c.WinSilverMax {
		return fmt.Errorf(ErrMsgInvertedRangeFmt, domain.ErrInvalidInput, "win silver", c.WinSilverMin, c.WinSilverMax)
	}
	if c.LoseSilverMin > c.LoseSilverMax {
		return fmt.Errorf(ErrMsgInvertedRangeFmt, domain.ErrInvalidInput, "lose silver", c.LoseSilverMin, c.LoseSilverMax)
	}
	return nil
}

// A coin flip is the weighted selector with two equal entries
var coin = []selector.Entry[domain.BattleResult]{
	{Value: domain.BattleWin, Weight: selector.DrawScale / 2},
	{Value: domain.BattleLose, Weight: selector.DrawScale / 2},
}

// Flip draws a win or lose result from src
func Flip(src utils.RandomSource) domain.BattleResult {
	result, err := selector.Pick(coin, selector.Draw(src))
	if err != nil {
		// coin is a valid constant table; only a broken source gets here
		return domain.BattleLose
	}
	return result
}

// Resolve flips the coin and credits the reward. Battles cost nothing and
// cannot fail on a valid state.
func Resolve(state domain.EconomyState, cfg Config, src utils.RandomSource) (domain.EconomyState, domain.BattleOutcome, error) {
	return ResolveForced(state, cfg, Flip(src), src)
}

// ResolveForced credits the reward for a given result. src only draws the
// silver amount.
func ResolveForced(state domain.EconomyState, cfg Config, result domain.BattleResult, src utils.RandomSource) (domain.EconomyState, domain.BattleOutcome, error) {
	next := state.Clone()
	outcome, err := apply(&next, cfg, result, src)
	if err != nil {
		return state, domain.BattleOutcome{}, err
	}
	return next, outcome, nil
}

func apply(state *domain.EconomyState, cfg Config, result domain.BattleResult, src utils.RandomSource) (domain.BattleOutcome, error) {
	var silver, gold int64
	switch result {
	case domain.BattleWin:
		silver = utils.RandomInt64From(src, cfg.WinSilverMin, cfg.WinSilverMax)
		gold = cfg.WinGold
	default:
		result = domain.BattleLose
		silver = utils.RandomInt64From(src, cfg.LoseSilverMin, cfg.LoseSilverMax)
	}

	if err := economy.Credit(state, domain.CurrencySilver, silver); err != nil {
		return domain.BattleOutcome{}, err
	}
	if err := economy.Credit(state, domain.CurrencyGold, gold); err != nil {
		return domain.BattleOutcome{}, err
	}

	return domain.BattleOutcome{
		Result:      result,
		SilverDelta: silver,
		GoldDelta:   gold,
		Balances:    state.Balances(),
	}, nil
}
