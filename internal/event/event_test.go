package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: eventType, Payload: "payload"})
	require.NoError(t, err)
	assert.True(t, handled, "handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(CaseRevealed, handler)
	bus.Subscribe(CaseRevealed, handler)
	bus.Subscribe(BattleResolved, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: CaseRevealed}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: HarvestCollected}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	calledAfterFailure := false

	bus.Subscribe(CaseOpened, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(CaseOpened, func(ctx context.Context, event Event) error {
		calledAfterFailure = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: CaseOpened})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.True(t, calledAfterFailure, "later handlers still run")
}

func TestPublishBestEffort_SwallowsErrors(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(HarvestCollected, func(ctx context.Context, event Event) error {
		return errors.New("subscriber down")
	})

	assert.NotPanics(t, func() {
		PublishBestEffort(context.Background(), bus, NewHarvestCollectedEvent(domain.HarvestReward{SilverDelta: 1}))
		PublishBestEffort(context.Background(), nil, Event{Type: HarvestCollected})
	})
}

func TestNewCaseOpenedEvent_HidesItem(t *testing.T) {
	reveal := time.Date(2024, 1, 1, 0, 0, 3, 0, time.UTC)
	evt := NewCaseOpenedEvent(domain.CaseOpening{
		ID:       "op-1",
		CaseID:   "sharp",
		Price:    100,
		Item:     domain.Item{ID: "1"},
		Balances: domain.Balances{Gold: 900},
		RevealAt: reveal,
	})

	assert.Equal(t, CaseOpened, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, "sharp", evt.GetMetadataValue("case_id"))

	p, ok := evt.Payload.(CaseOpenedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, int64(900), p.GoldAfter)
	assert.Equal(t, reveal, p.RevealAt)
}

func TestDecodePayload(t *testing.T) {
	want := BattleResolvedPayloadV1{Outcome: domain.BattleOutcome{ID: "b1", Result: domain.BattleWin, GoldDelta: 400}}

	typed, err := DecodePayload[BattleResolvedPayloadV1](want)
	require.NoError(t, err)
	assert.Equal(t, want, typed)

	generic := map[string]interface{}{
		"outcome": map[string]interface{}{"id": "b1", "result": "win", "gold_delta": 400},
	}
	decoded, err := DecodePayload[BattleResolvedPayloadV1](generic)
	require.NoError(t, err)
	assert.Equal(t, "b1", decoded.Outcome.ID)
	assert.Equal(t, domain.BattleWin, decoded.Outcome.Result)
	assert.Equal(t, int64(400), decoded.Outcome.GoldDelta)
}
