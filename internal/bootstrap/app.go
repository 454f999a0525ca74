package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/CaseSim_Go/internal/catalog"
	"github.com/osse101/CaseSim_Go/internal/concurrency"
	"github.com/osse101/CaseSim_Go/internal/config"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/duel"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/harvest"
	"github.com/osse101/CaseSim_Go/internal/lootbox"
	"github.com/osse101/CaseSim_Go/internal/reveal"
	"github.com/osse101/CaseSim_Go/internal/server"
	"github.com/osse101/CaseSim_Go/internal/sse"
	"github.com/osse101/CaseSim_Go/internal/user"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// App is the fully wired simulator
type App struct {
	Storage *Storage
	Catalog *catalog.Catalog
	Economy *economy.Store
	Bus     event.Bus
	Hub     *sse.Hub
	Cases   lootbox.Service
	Battles duel.Service
	Harvest harvest.Service
	Users   user.Service
	Server  *server.Server
}

// NewApp opens storage, restores persisted state and wires every service.
// registerer may be nil. The hub is started; call Shutdown to release it.
func NewApp(ctx context.Context, cfg *config.Config, registerer prometheus.Registerer) (*App, error) {
	cat, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app, err := wire(ctx, cfg, cat, storage, registerer)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return app, nil
}

func wire(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, storage *Storage, registerer prometheus.Registerer) (*App, error) {
	store := economy.NewStore(storage.KV, cfg.StartingState())
	if _, err := store.Load(ctx); err != nil {
		// Only the unreadable keys fell back to defaults; the readable ones
		// are current, so the next write keeps them.
		if !errors.Is(err, domain.ErrCorruptState) {
			return nil, fmt.Errorf("%s: %w", ErrMsgLoadEconomy, err)
		}
		slog.Warn(LogMsgStateCorrupt, "error", err)
	}

	rnd := newRandomSource(cfg.RNGSeed)
	bus := event.NewMemoryBus()
	guard := concurrency.NewInFlight()

	cases := lootbox.NewService(cat, store, guard, reveal.NewScheduler(cfg.CaseRevealDelay), bus, rnd)
	battles, err := duel.NewService(cfg.BattleConfig(), store, guard, reveal.NewScheduler(cfg.BattleRevealDelay), bus, rnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildService, err)
	}
	harvests, err := harvest.NewService(cfg.HarvestConfig(), store, bus, rnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildService, err)
	}
	users := user.NewService(storage.KV, bus, rnd)

	hub := sse.NewHub(sse.HubOptions{})
	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:   bus,
		Hub:        hub,
		Users:      users,
		Registerer: registerer,
	}); err != nil {
		return nil, err
	}
	hub.Start()

	if id, ok, err := users.Restore(ctx); err != nil {
		slog.Warn(fmt.Sprintf(ErrMsgRestoreIdentityFmt, err))
	} else if ok {
		slog.Info(LogMsgIdentityRestored, "name", id.Name)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Version:        cfg.Version,
		Limits: server.RateLimits{
			Window:          cfg.RateLimitWindow,
			MaxRequests:     cfg.RateLimitRequests,
			FailedAuthAlert: cfg.AuthFailureAlert,
		},
	}, server.Dependencies{
		Pinger:  storage.Pinger,
		Economy: store,
		Cases:   cases,
		Battles: battles,
		Harvest: harvests,
		Users:   users,
		Hub:     hub,
	})

	return &App{
		Storage: storage,
		Catalog: cat,
		Economy: store,
		Bus:     bus,
		Hub:     hub,
		Cases:   cases,
		Battles: battles,
		Harvest: harvests,
		Users:   users,
		Server:  srv,
	}, nil
}

// newRandomSource returns a reproducible source when seed is non-zero.
// The source is shared by every service and is not safe for concurrent use
// on its own, so it is serialized here.
func newRandomSource(seed uint64) utils.RandomSource {
	if seed == 0 {
		return utils.NewRandomSource()
	}
	return utils.NewLockedSource(utils.NewSeededSource(seed))
}
