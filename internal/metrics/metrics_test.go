package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/event"
)

func TestEventMetricsCollector_RecordsBusinessMetrics(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	opening := domain.CaseOpening{CaseID: "metrics-case", Price: 100, Rarity: domain.RarityRed}
	spentBefore := testutil.ToFloat64(GoldSpent.WithLabelValues("metrics-case"))
	openedBefore := testutil.ToFloat64(CasesOpened.WithLabelValues("metrics-case", "red"))
	winsBefore := testutil.ToFloat64(BattlesTotal.WithLabelValues("win"))
	harvestsBefore := testutil.ToFloat64(HarvestsTotal)

	require.NoError(t, bus.Publish(ctx, event.NewCaseOpenedEvent(opening)))
	require.NoError(t, bus.Publish(ctx, event.NewCaseRevealedEvent(opening)))
	require.NoError(t, bus.Publish(ctx, event.NewBattleResolvedEvent(domain.BattleOutcome{Result: domain.BattleWin, SilverDelta: 700, GoldDelta: 400})))
	require.NoError(t, bus.Publish(ctx, event.NewHarvestCollectedEvent(domain.HarvestReward{SilverDelta: 300, GoldDelta: 20})))

	assert.Equal(t, spentBefore+100, testutil.ToFloat64(GoldSpent.WithLabelValues("metrics-case")))
	assert.Equal(t, openedBefore+1, testutil.ToFloat64(CasesOpened.WithLabelValues("metrics-case", "red")))
	assert.Equal(t, winsBefore+1, testutil.ToFloat64(BattlesTotal.WithLabelValues("win")))
	assert.Equal(t, harvestsBefore+1, testutil.ToFloat64(HarvestsTotal))
}

func TestEventMetricsCollector_BadPayloadIsNotAnError(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.BattleResolved)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.BattleResolved,
		Payload: func() {},
	})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.BattleResolved))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/cases/{caseID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/cases/{caseID}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cases/sharp", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/cases/{caseID}", "418")))
}

func TestMiddleware_PreservesFlusher(t *testing.T) {
	var flushable bool
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.True(t, flushable)
}

func TestRegisterSSEGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterSSEGauges(reg, func() int { return 3 }, func() int64 { return 7 }))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
