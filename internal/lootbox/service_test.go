package lootbox

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/catalog"
	"github.com/osse101/CaseSim_Go/internal/concurrency"
	"github.com/osse101/CaseSim_Go/internal/database/memory"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/reveal"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

type failingKV struct {
	*memory.KVRepository
	fail bool
}

func (f *failingKV) SetMany(ctx context.Context, values map[string]string) error {
	if f.fail {
		return fmt.Errorf("%w: disk full", domain.ErrStorageUnavailable)
	}
	return f.KVRepository.SetMany(ctx, values)
}

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc   Service
	store *economy.Store
	kv    *failingKV
	rec   *recorder
}

func newFixture(t *testing.T, delay time.Duration, draws ...float64) *fixture {
	t.Helper()
	ctx := context.Background()

	cat, err := catalog.Load(ctx, "")
	require.NoError(t, err)

	kv := &failingKV{KVRepository: memory.NewKVRepository()}
	store := economy.NewStore(kv, domain.DefaultEconomyState())
	_, err = store.Load(ctx)
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	rec := &recorder{}
	bus.Subscribe(event.CaseOpened, rec.handle)
	bus.Subscribe(event.CaseRevealed, rec.handle)

	sched := reveal.NewScheduler(delay)
	svc := NewService(cat, store, concurrency.NewInFlight(), sched, bus, utils.FixedSource(draws...))
	t.Cleanup(svc.Shutdown)

	return &fixture{svc: svc, store: store, kv: kv, rec: rec}
}

func TestService_OpenCase_DebitsAndAppends(t *testing.T) {
	// 0.01 * 100 = 1 falls in the first sharp drop (item 2, weight 4)
	f := newFixture(t, 0, 0.01)

	pending, err := f.svc.OpenCase(context.Background(), "sharp")
	require.NoError(t, err)
	require.True(t, pending.Revealed())

	opening := pending.Result()
	assert.Equal(t, "2", opening.Item.ID)
	assert.False(t, opening.IsNothing)
	assert.NotEmpty(t, opening.ID)
	assert.Equal(t, int64(900), opening.Balances.Gold)
	assert.Equal(t, int64(900), f.store.Snapshot().Gold)
	assert.Len(t, f.store.Snapshot().Inventory, 1)

	assert.Equal(t, []event.Type{event.CaseOpened, event.CaseRevealed}, f.rec.types())
	assert.False(t, f.svc.InProgress())
}

func TestService_OpenCase_NothingOutcome(t *testing.T) {
	// 0.9 * 100 = 90 is past the sharp total of 80, so the sentinel absorbs it
	f := newFixture(t, 0, 0.9)

	pending, err := f.svc.OpenCase(context.Background(), "sharp")
	require.NoError(t, err)

	assert.True(t, pending.Result().IsNothing)
	assert.Equal(t, "6", pending.Result().Item.ID)
	assert.Equal(t, int64(900), f.store.Snapshot().Gold)
	assert.Empty(t, f.store.Snapshot().Inventory)
}

func TestService_OpenCase_UnknownCase(t *testing.T) {
	f := newFixture(t, 0, 0.5)

	_, err := f.svc.OpenCase(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownCase)
	assert.Equal(t, domain.DefaultGold, f.store.Snapshot().Gold)
}

func TestService_OpenCase_InsufficientFunds(t *testing.T) {
	f := newFixture(t, 0, 0.5)
	require.NoError(t, f.store.Save(context.Background(), domain.EconomyState{Silver: 10, Gold: 99}))

	_, err := f.svc.OpenCase(context.Background(), "sharp")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(99), f.store.Snapshot().Gold)
	assert.False(t, f.svc.InProgress(), "flag released on failure")
	assert.Empty(t, f.rec.types())
}

func TestService_OpenCase_InFlight(t *testing.T) {
	f := newFixture(t, time.Hour, 0.5)
	ctx := context.Background()

	first, err := f.svc.OpenCase(ctx, "sharp")
	require.NoError(t, err)
	assert.False(t, first.Revealed())
	assert.True(t, f.svc.InProgress())

	_, err = f.svc.OpenCase(ctx, "knife")
	assert.ErrorIs(t, err, domain.ErrActionInProgress)
	assert.Equal(t, int64(900), f.store.Snapshot().Gold, "debited once")

	f.svc.Shutdown()
	assert.True(t, first.Revealed())
	assert.False(t, f.svc.InProgress())

	// The outcome was committed before disclosure
	assert.Equal(t, []event.Type{event.CaseOpened, event.CaseRevealed}, f.rec.types())
}

func TestService_OpenCase_ItemHiddenUntilReveal(t *testing.T) {
	f := newFixture(t, time.Hour, 0.01)

	pending, err := f.svc.OpenCase(context.Background(), "sharp")
	require.NoError(t, err)

	// The price is visible at once, the drop only after the reveal
	assert.Len(t, f.store.Snapshot().Inventory, 1)
	disclosed := f.store.Disclosed()
	assert.Equal(t, int64(900), disclosed.Gold)
	assert.Empty(t, disclosed.Inventory)
	assert.Equal(t, 1, pending.Result().InventorySize)

	f.svc.Shutdown()
	require.True(t, pending.Revealed())
	assert.Equal(t, []domain.Item{pending.Result().Item}, f.store.Disclosed().Inventory)
}

func TestService_OpenCase_WaitForReveal(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond, 0.5)

	pending, err := f.svc.OpenCase(context.Background(), "sharp")
	require.NoError(t, err)
	assert.WithinDuration(t, pending.Result().OpenedAt.Add(20*time.Millisecond), pending.RevealAt(), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := pending.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending.ID(), got.ID)
	assert.False(t, f.svc.InProgress())
}

func TestService_OpenCase_StorageFailure(t *testing.T) {
	f := newFixture(t, 0, 0.01)
	f.kv.fail = true

	_, err := f.svc.OpenCase(context.Background(), "sharp")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	snap := f.store.Snapshot()
	assert.Equal(t, domain.DefaultGold, snap.Gold)
	assert.Empty(t, snap.Inventory)
	assert.False(t, f.svc.InProgress())

	// The session continues once storage recovers
	f.kv.fail = false
	_, err = f.svc.OpenCase(context.Background(), "sharp")
	require.NoError(t, err)
	assert.Equal(t, int64(900), f.store.Snapshot().Gold)
}

func TestService_Odds(t *testing.T) {
	f := newFixture(t, 0)

	odds, err := f.svc.Odds("sharp")
	require.NoError(t, err)
	require.Len(t, odds, 4)

	assert.InDelta(t, 0.04, odds[0].Probability, 1e-9)
	assert.InDelta(t, 0.05, odds[1].Probability, 1e-9)
	assert.InDelta(t, 0.07, odds[2].Probability, 1e-9)
	assert.InDelta(t, 0.84, odds[3].Probability, 1e-9)
	assert.Equal(t, float64(64), odds[3].Weight)

	_, err = f.svc.Odds("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownCase)
}

func TestService_CasesAndGetCase(t *testing.T) {
	f := newFixture(t, 0)

	cases := f.svc.Cases()
	require.Len(t, cases, 2)
	assert.Equal(t, "sharp", cases[0].ID)

	knife, err := f.svc.GetCase("knife")
	require.NoError(t, err)
	assert.Equal(t, int64(500), knife.Price)
}

// MockEconomyStore is a mock implementation of EconomyStore
type MockEconomyStore struct {
	mock.Mock
}

func (m *MockEconomyStore) Stage(ctx context.Context, id string, mutate func(state *domain.EconomyState) (domain.Concealment, error)) (domain.EconomyState, error) {
	args := m.Called(ctx, id, mutate)
	return args.Get(0).(domain.EconomyState), args.Error(1)
}

func (m *MockEconomyStore) Reveal(id string) {
	m.Called(id)
}

func TestService_OpenCase_StoreErrorReleasesFlag(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.Load(ctx, "")
	require.NoError(t, err)

	store := new(MockEconomyStore)
	store.On("Stage", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(domain.EconomyState{}, fmt.Errorf("%w: gone", domain.ErrStorageUnavailable)).Once()

	guard := concurrency.NewInFlight()
	svc := NewService(cat, store, guard, reveal.NewScheduler(0), nil, utils.FixedSource(0.5))

	_, err = svc.OpenCase(ctx, "sharp")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, guard.Active())
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Reveal", mock.Anything)
}
