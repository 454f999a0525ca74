// Package harvest implements the clicker button: every press credits a
// small random amount of both currencies.
package harvest

import (
	"context"
	"fmt"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// Config holds the reward ranges
type Config struct {
	SilverMin int64
	SilverMax int64
	GoldMin   int64
	GoldMax   int64
}

// DefaultConfig returns the standard reward ranges
func DefaultConfig() Config {
	return Config{
		SilverMin: DefaultSilverMin,
		SilverMax: DefaultSilverMax,
		GoldMin:   DefaultGoldMin,
		GoldMax:   DefaultGoldMax,
	}
}

// Validate rejects negative or inverted ranges
func (c Config) Validate() error {
	if c.SilverMin < 0 || c.SilverMin > c.SilverMax {
		return fmt.Errorf(ErrMsgInvertedRangeFmt, domain.ErrInvalidInput, "silver", c.SilverMin, c.SilverMax)
	}
	if c.GoldMin < 0 || c.GoldMin > c.GoldMax {
		return fmt.Errorf(ErrMsgInvertedRangeFmt, domain.ErrInvalidInput, "gold", c.GoldMin, c.GoldMax)
	}
	return nil
}

// EconomyStore commits state transitions
type EconomyStore interface {
	Apply(ctx context.Context, mutate func(state *domain.EconomyState) error) (domain.EconomyState, error)
}

// Service defines the harvest system business logic
type Service interface {
	// Harvest credits one click reward
	Harvest(ctx context.Context) (*domain.HarvestReward, error)
}

type service struct {
	cfg   Config
	store EconomyStore
	bus   event.Bus
	rnd   utils.RandomSource
}

// NewService creates a new harvest service. bus may be nil.
func NewService(cfg Config, store EconomyStore, bus event.Bus, rnd utils.RandomSource) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = utils.NewRandomSource()
	}
	return &service{cfg: cfg, store: store, bus: bus, rnd: rnd}, nil
}

// Harvest credits silver and gold in a single write
func (s *service) Harvest(ctx context.Context) (*domain.HarvestReward, error) {
	silver := utils.RandomInt64From(s.rnd, s.cfg.SilverMin, s.cfg.SilverMax)
	gold := utils.RandomInt64From(s.rnd, s.cfg.GoldMin, s.cfg.GoldMax)

	state, err := s.store.Apply(ctx, func(state *domain.EconomyState) error {
		if err := economy.Credit(state, domain.CurrencySilver, silver); err != nil {
			return err
		}
		return economy.Credit(state, domain.CurrencyGold, gold)
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHarvestFailed, err)
	}

	reward := &domain.HarvestReward{
		SilverDelta: silver,
		GoldDelta:   gold,
		Balances:    state.Balances(),
	}
	logger.FromContext(ctx).Debug(LogMsgHarvested, "silver", silver, "gold", gold)
	event.PublishBestEffort(ctx, s.bus, event.NewHarvestCollectedEvent(*reward))

	return reward, nil
}
