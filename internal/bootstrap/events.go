package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/metrics"
	"github.com/osse101/CaseSim_Go/internal/sse"
	"github.com/osse101/CaseSim_Go/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration
type EventHandlerDependencies struct {
	EventBus   event.Bus
	Hub        *sse.Hub
	Users      user.Service
	Registerer prometheus.Registerer // nil skips the SSE gauges
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (business counters from events)
// - SSE subscriber (forwards disclosed outcomes to live clients)
// - Login callback (greets the player in the log)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)

		if deps.Registerer != nil {
			if err := metrics.RegisterSSEGauges(deps.Registerer, deps.Hub.ClientCount, deps.Hub.Dropped); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgFailedRegisterGauges, err)
			}
		}
	}

	if deps.Users != nil {
		deps.Users.OnLogin(func(ctx context.Context, id domain.Identity) {
			logger.FromContext(ctx).Info(LogMsgPlayerWelcomed, "name", id.Name)
		})
	}

	slog.Info(LogMsgEventSystemInitialized)
	return nil
}
