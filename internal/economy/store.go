// Package economy owns balances and inventory and keeps storage in step
// with memory after every mutation.
package economy

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/repository"
)

// Store is the single source of truth for the economy state.
//
// Every mutation runs on a copy, is written to storage in full, and only
// then replaces the in-memory state. A failed write leaves memory as it was,
// so the session can continue on the last committed state.
//
// Outcomes committed through Stage stay out of Disclosed until Reveal.
type Store struct {
	mu       sync.Mutex
	kv       repository.KeyValue
	defaults domain.EconomyState
	state    domain.EconomyState
	pending  map[string]domain.Concealment
}

// NewStore creates a store holding defaults until Load succeeds
func NewStore(kv repository.KeyValue, defaults domain.EconomyState) *Store {
	return &Store{
		kv:       kv,
		defaults: defaults.Clone(),
		state:    defaults.Clone(),
		pending:  make(map[string]domain.Concealment),
	}
}

// Load reads persisted state, substituting defaults for absent keys, and
// makes it current. A key that cannot be decoded is replaced by its default
// while the readable keys are kept; the state is then still made current
// and returned along with an error wrapping domain.ErrCorruptState. If
// storage cannot be read at all the in-memory state is left untouched.
func (s *Store) Load(ctx context.Context) (domain.EconomyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	values, err := s.kv.GetMany(ctx, domain.EconomyKeys...)
	if err != nil {
		return domain.EconomyState{}, fmt.Errorf(ErrMsgLoadFailed, err)
	}

	state, missing, decodeErr := decodeState(values, s.defaults)
	if len(missing) > 0 {
		log.Info(LogMsgDefaultsUsed, "keys", missing)
	}
	if decodeErr != nil {
		log.Warn(LogMsgCorruptKeys, "error", decodeErr)
	}

	s.state = state
	clear(s.pending)
	log.Info(LogMsgStateLoaded,
		"silver", state.Silver,
		"gold", state.Gold,
		"inventory_size", len(state.Inventory))
	return state.Clone(), decodeErr
}

// Save overwrites persisted and in-memory state with state
func (s *Store) Save(ctx context.Context, state domain.EconomyState) error {
	if state.Silver < 0 || state.Gold < 0 {
		return fmt.Errorf(ErrMsgNegativeBalance, domain.ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, state); err != nil {
		return err
	}
	s.state = state.Clone()
	clear(s.pending)
	logger.FromContext(ctx).Debug(LogMsgStateSaved)
	return nil
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() domain.EconomyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Balances returns the current balances
func (s *Store) Balances() domain.Balances {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balances()
}

// Apply runs mutate against a copy of the current state and commits the
// result with a single write. If mutate or the write fails nothing changes.
func (s *Store) Apply(ctx context.Context, mutate func(state *domain.EconomyState) error) (domain.EconomyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, mutate)
}

// Stage commits like Apply for an outcome that is disclosed later. mutate
// reports which part of its change stays hidden from Disclosed until
// Reveal(id). The returned state is what the player sees once id is
// revealed: other outcomes still awaiting their reveal are left out.
func (s *Store) Stage(ctx context.Context, id string, mutate func(state *domain.EconomyState) (domain.Concealment, error)) (domain.EconomyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hidden domain.Concealment
	committed, err := s.commitLocked(ctx, func(state *domain.EconomyState) error {
		h, err := mutate(state)
		hidden = h
		return err
	})
	if err != nil {
		return domain.EconomyState{}, err
	}

	view := committed.Conceal(slices.Collect(maps.Values(s.pending))...)
	if !hidden.IsZero() {
		s.pending[id] = hidden
		logger.FromContext(ctx).Debug(LogMsgOutcomeStaged, "id", id)
	}
	return view, nil
}

// Reveal discloses a staged outcome. Unknown ids are ignored.
func (s *Store) Reveal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Disclosed returns the current state without the outcomes that are still
// awaiting their reveal
func (s *Store) Disclosed() domain.EconomyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Conceal(slices.Collect(maps.Values(s.pending))...)
}

// commitLocked must be called with mu held
func (s *Store) commitLocked(ctx context.Context, mutate func(state *domain.EconomyState) error) (domain.EconomyState, error) {
	next := s.state.Clone()
	if err := mutate(&next); err != nil {
		logger.FromContext(ctx).Debug(LogMsgMutationRejected, "error", err)
		return domain.EconomyState{}, err
	}
	if next.Silver < 0 || next.Gold < 0 {
		return domain.EconomyState{}, fmt.Errorf(ErrMsgNegativeBalance, domain.ErrInvalidAmount)
	}

	if err := s.persist(ctx, next); err != nil {
		return domain.EconomyState{}, err
	}
	s.state = next
	return next.Clone(), nil
}

// Credit adds amount to a balance and persists
func (s *Store) Credit(ctx context.Context, c domain.Currency, amount int64) (domain.Balances, error) {
	st, err := s.Apply(ctx, func(state *domain.EconomyState) error {
		return Credit(state, c, amount)
	})
	return st.Balances(), err
}

// Debit subtracts amount from a balance and persists; fails with
// domain.ErrInsufficientFunds if amount exceeds the balance
func (s *Store) Debit(ctx context.Context, c domain.Currency, amount int64) (domain.Balances, error) {
	st, err := s.Apply(ctx, func(state *domain.EconomyState) error {
		return Debit(state, c, amount)
	})
	return st.Balances(), err
}

// AppendToInventory adds an item and persists
func (s *Store) AppendToInventory(ctx context.Context, item domain.Item) error {
	_, err := s.Apply(ctx, func(state *domain.EconomyState) error {
		AppendItem(state, item)
		return nil
	})
	return err
}

// persist must be called with mu held
func (s *Store) persist(ctx context.Context, state domain.EconomyState) error {
	values, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := s.kv.SetMany(ctx, values); err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "error", err)
		return fmt.Errorf(ErrMsgPersistFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgStatePersisted,
		"silver", state.Silver,
		"gold", state.Gold,
		"inventory_size", len(state.Inventory))
	return nil
}
