package lootbox

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
	"github.com/osse101/CaseSim_Go/internal/selector"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// Catalog is the read-only view of case definitions the service needs
type Catalog interface {
	Case(id string) (domain.CaseDefinition, error)
	Cases() []domain.CaseDefinition
	Table(id string) (*selector.Table[domain.Item], error)
	IsNothing(item domain.Item) bool
}

// EconomyStore commits openings and discloses them on reveal
type EconomyStore interface {
	Stage(ctx context.Context, id string, mutate func(state *domain.EconomyState) (domain.Concealment, error)) (domain.EconomyState, error)
	Reveal(id string)
}

// DropOdds describes one drop of a case with its effective probability,
// which includes any fallback mass the last drop absorbs
type DropOdds struct {
	Item        domain.Item `json:"item"`
	Weight      float64     `json:"weight"`
	Probability float64     `json:"probability"`
}

// Service defines the case opening interface
type Service interface {
	OpenCase(ctx context.Context, caseID string) (*reveal.Pending[domain.CaseOpening], error)
	Cases() []domain.CaseDefinition
	GetCase(caseID string) (domain.CaseDefinition, error)
	Odds(caseID string) ([]DropOdds, error)
	InProgress() bool
	Shutdown()
}

type service struct {
	catalog   Catalog
	store     EconomyStore
	guard     *concurrency.InFlight
	scheduler *reveal.Scheduler
	bus       event.Bus
	rnd       utils.RandomSource
	now       func() time.Time
}

// NewService creates a new case opening service. bus may be nil.
func NewService(catalog Catalog, store EconomyStore, guard *concurrency.InFlight, scheduler *reveal.Scheduler, bus event.Bus, rnd utils.RandomSource) Service {
	if rnd == nil {
		rnd = utils.NewRandomSource()
	}
	return &service{
		catalog:   catalog,
		store:     store,
		guard:     guard,
		scheduler: scheduler,
		bus:       bus,
		rnd:       rnd,
		now:       time.Now,
	}
}

// OpenCase buys and opens a case. The outcome is committed before this
// returns; the returned Pending discloses it after the reveal delay, and
// until then the store keeps the new item out of its disclosed state.
func (s *service) OpenCase(ctx context.Context, caseID string) (*reveal.Pending[domain.CaseOpening], error) {
	log := logger.FromContext(ctx)

	def, err := s.catalog.Case(caseID)
	if err != nil {
		return nil, err
	}
	table, err := s.catalog.Table(caseID)
	if err != nil {
		return nil, err
	}

	if !s.guard.TryAcquire(ActionOpenCase) {
		log.Debug(LogMsgActionInProgress, "case", caseID)
		return nil, fmt.Errorf("%w: %s", domain.ErrActionInProgress, ActionOpenCase)
	}

	id := uuid.NewString()
	draw := selector.Draw(s.rnd)
	var opening domain.CaseOpening
	view, err := s.store.Stage(ctx, id, func(state *domain.EconomyState) (domain.Concealment, error) {
		slot := len(state.Inventory)
		o, err := apply(state, def, table, draw, s.catalog.IsNothing)
		opening = o
		if err != nil || o.IsNothing {
			return domain.Concealment{}, err
		}
		return domain.Concealment{Items: []int{slot}}, nil
	})
	if err != nil {
		s.guard.Release(ActionOpenCase)
		log.Info(LogMsgOpenRejected, "case", caseID, "error", err)
		return nil, fmt.Errorf(ErrMsgOpenFailed, caseID, err)
	}

	opening.ID = id
	opening.Balances = view.Balances()
	opening.InventorySize = len(view.Inventory)
	opening.OpenedAt = s.now()
	opening.RevealAt = s.scheduler.RevealTime(opening.OpenedAt)

	log.Info(LogMsgCaseOpened,
		"opening_id", opening.ID,
		"case", caseID,
		"gold_after", opening.Balances.Gold,
		"reveal_at", opening.RevealAt)
	event.PublishBestEffort(ctx, s.bus, event.NewCaseOpenedEvent(opening))

	revealCtx := context.WithoutCancel(ctx)
	pending := reveal.Schedule(s.scheduler, opening.ID, opening.RevealAt, opening, func(o domain.CaseOpening) {
		s.store.Reveal(o.ID)
		s.guard.Release(ActionOpenCase)
		logger.FromContext(revealCtx).Info(LogMsgCaseRevealed,
			"opening_id", o.ID,
			"item", o.Item.ID,
			"rarity", o.Rarity,
			"nothing", o.IsNothing)
		event.PublishBestEffort(revealCtx, s.bus, event.NewCaseRevealedEvent(o))
	})

	return pending, nil
}

// Cases lists the purchasable cases
func (s *service) Cases() []domain.CaseDefinition {
	return s.catalog.Cases()
}

// GetCase returns one case definition
func (s *service) GetCase(caseID string) (domain.CaseDefinition, error) {
	return s.catalog.Case(caseID)
}

// Odds returns the effective probability of every drop in a case
func (s *service) Odds(caseID string) ([]DropOdds, error) {
	def, err := s.catalog.Case(caseID)
	if err != nil {
		return nil, err
	}
	table, err := s.catalog.Table(caseID)
	if err != nil {
		return nil, err
	}

	probs := table.Odds()
	out := make([]DropOdds, len(def.Drops))
	for i, d := range def.Drops {
		out[i] = DropOdds{Item: d.Item, Weight: d.Weight, Probability: probs[i]}
	}
	return out, nil
}

// InProgress reports whether an opening is awaiting its reveal
func (s *service) InProgress() bool {
	return s.guard.IsHeld(ActionOpenCase)
}

// Shutdown discloses pending openings immediately
func (s *service) Shutdown() {
	s.scheduler.Close()
}
