package metrics

import (
	"context"

	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CaseOpened,
		event.CaseRevealed,
		event.BattleResolved,
		event.HarvestCollected,
		event.UserLoggedIn,
		event.UserLoggedOut,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Malformed payloads are
// logged and skipped; metrics never fail a publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CaseOpened:
		p, err := event.DecodePayload[event.CaseOpenedPayloadV1](evt.Payload)
		if err != nil {
			return e.skip(ctx, evt, err)
		}
		GoldSpent.WithLabelValues(p.CaseID).Add(float64(p.Price))

	case event.CaseRevealed:
		p, err := event.DecodePayload[event.CaseRevealedPayloadV1](evt.Payload)
		if err != nil {
			return e.skip(ctx, evt, err)
		}
		CasesOpened.WithLabelValues(p.Opening.CaseID, string(p.Opening.Rarity)).Inc()

	case event.BattleResolved:
		p, err := event.DecodePayload[event.BattleResolvedPayloadV1](evt.Payload)
		if err != nil {
			return e.skip(ctx, evt, err)
		}
		BattlesTotal.WithLabelValues(string(p.Outcome.Result)).Inc()
		SilverEarned.WithLabelValues(SourceBattle).Add(float64(p.Outcome.SilverDelta))
		GoldEarned.WithLabelValues(SourceBattle).Add(float64(p.Outcome.GoldDelta))

	case event.HarvestCollected:
		p, err := event.DecodePayload[event.HarvestCollectedPayloadV1](evt.Payload)
		if err != nil {
			return e.skip(ctx, evt, err)
		}
		HarvestsTotal.Inc()
		SilverEarned.WithLabelValues(SourceHarvest).Add(float64(p.Reward.SilverDelta))
		GoldEarned.WithLabelValues(SourceHarvest).Add(float64(p.Reward.GoldDelta))

	case event.UserLoggedIn:
		LoginsTotal.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) skip(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
	return nil
}
