package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/CaseSim_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for the disclosed outcomes. Purchases are
// not forwarded until their reveal fires.
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.CaseRevealed, s.handleCaseRevealed)
	s.bus.Subscribe(event.BattleResolved, s.handleBattleResolved)
	s.bus.Subscribe(event.HarvestCollected, s.handleHarvestCollected)

	slog.Info(LogMsgSubscribed,
		"types", []string{
			string(event.CaseRevealed),
			string(event.BattleResolved),
			string(event.HarvestCollected),
		})
}

func (s *Subscriber) handleCaseRevealed(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CaseRevealedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	o := p.Opening
	s.hub.Broadcast(EventTypeCaseRevealed, CaseRevealedPayload{
		OpeningID: o.ID,
		CaseID:    o.CaseID,
		Item:      o.Item,
		IsNothing: o.IsNothing,
		Balances:  o.Balances,
		RevealAt:  o.RevealAt,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeCaseRevealed, "opening_id", o.ID)
	return nil
}

func (s *Subscriber) handleBattleResolved(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.BattleResolvedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	o := p.Outcome
	s.hub.Broadcast(EventTypeBattleResolved, BattleResolvedPayload{
		BattleID:    o.ID,
		Result:      o.Result,
		SilverDelta: o.SilverDelta,
		GoldDelta:   o.GoldDelta,
		Balances:    o.Balances,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeBattleResolved, "battle_id", o.ID)
	return nil
}

func (s *Subscriber) handleHarvestCollected(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.HarvestCollectedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeHarvestCollected, HarvestCollectedPayload{
		SilverDelta: p.Reward.SilverDelta,
		GoldDelta:   p.Reward.GoldDelta,
		Balances:    p.Reward.Balances,
	})
	return nil
}
