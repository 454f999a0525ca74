package duel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseSim_Go/internal/concurrency"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/reveal"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// EconomyStore commits battle rewards and discloses them on reveal
type EconomyStore interface {
	Stage(ctx context.Context, id string, mutate func(state *domain.EconomyState) (domain.Concealment, error)) (domain.EconomyState, error)
	Reveal(id string)
}

// Service defines the interface for battle operations
type Service interface {
	ResolveBattle(ctx context.Context) (*reveal.Pending[domain.BattleOutcome], error)
	InProgress() bool
	Config() Config
	Shutdown()
}

type service struct {
	cfg       Config
	store     EconomyStore
	guard     *concurrency.InFlight
	scheduler *reveal.Scheduler
	bus       event.Bus
	rnd       utils.RandomSource
	now       func() time.Time
}

// NewService creates a new battle service. bus may be nil.
func NewService(cfg Config, store EconomyStore, guard *concurrency.InFlight, scheduler *reveal.Scheduler, bus event.Bus, rnd utils.RandomSource) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = utils.NewRandomSource()
	}
	return &service{
		cfg:       cfg,
		store:     store,
		guard:     guard,
		scheduler: scheduler,
		bus:       bus,
		rnd:       rnd,
		now:       time.Now,
	}, nil
}

// ResolveBattle flips the coin and credits the reward immediately. The
// result, and the reward in the store's disclosed state, show after the
// reveal delay.
func (s *service) ResolveBattle(ctx context.Context) (*reveal.Pending[domain.BattleOutcome], error) {
	log := logger.FromContext(ctx)

	if !s.guard.TryAcquire(ActionBattle) {
		log.Debug(LogMsgActionInProgress)
		return nil, fmt.Errorf("%w: %s", domain.ErrActionInProgress, ActionBattle)
	}

	id := uuid.NewString()
	result := Flip(s.rnd)
	var outcome domain.BattleOutcome
	view, err := s.store.Stage(ctx, id, func(state *domain.EconomyState) (domain.Concealment, error) {
		o, err := apply(state, s.cfg, result, s.rnd)
		outcome = o
		return domain.Concealment{Silver: o.SilverDelta, Gold: o.GoldDelta}, err
	})
	if err != nil {
		s.guard.Release(ActionBattle)
		log.Warn(LogMsgBattleRejected, "error", err)
		return nil, fmt.Errorf(ErrMsgBattleFailed, err)
	}

	outcome.ID = id
	outcome.Balances = view.Balances()
	outcome.ResolvedAt = s.now()
	outcome.RevealAt = s.scheduler.RevealTime(outcome.ResolvedAt)

	log.Info(LogMsgBattleResolved,
		"battle_id", outcome.ID,
		"result", outcome.Result,
		"silver_delta", outcome.SilverDelta,
		"gold_delta", outcome.GoldDelta)

	revealCtx := context.WithoutCancel(ctx)
	return reveal.Schedule(s.scheduler, outcome.ID, outcome.RevealAt, outcome, func(o domain.BattleOutcome) {
		s.store.Reveal(o.ID)
		s.guard.Release(ActionBattle)
		logger.FromContext(revealCtx).Debug(LogMsgBattleRevealed, "battle_id", o.ID)
		event.PublishBestEffort(revealCtx, s.bus, event.NewBattleResolvedEvent(o))
	}), nil
}

// InProgress reports whether a battle is awaiting its reveal
func (s *service) InProgress() bool {
	return s.guard.IsHeld(ActionBattle)
}

// Config returns the reward ranges in effect
func (s *service) Config() Config {
	return s.cfg
}

// Shutdown discloses a pending battle immediately
func (s *service) Shutdown() {
	s.scheduler.Close()
}
