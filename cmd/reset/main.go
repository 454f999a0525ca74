// Command reset overwrites the persisted economy with the starting balances
// and an empty inventory, and forgets the logged-in identity.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/osse101/CaseSim_Go/internal/bootstrap"
	"github.com/osse101/CaseSim_Go/internal/config"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
)

func main() {
	keepUser := flag.Bool("keep-user", false, "keep the logged-in identity")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	bootstrap.InitLogger(cfg, os.Stderr)

	if cfg.StorageDriver == config.DriverMemory {
		log.Println("STORAGE_DRIVER=memory keeps nothing between runs, nothing to reset")
		return
	}

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer storage.Close()

	state := cfg.StartingState()
	if err := economy.NewStore(storage.KV, state).Save(ctx, state); err != nil {
		log.Fatalf("Failed to reset economy: %v", err)
	}
	log.Printf("Economy reset: %d silver, %d gold, empty inventory\n", state.Silver, state.Gold)

	if !*keepUser {
		if err := storage.KV.Delete(ctx, domain.KeyUser); err != nil {
			log.Fatalf("Failed to drop identity: %v", err)
		}
		log.Println("Identity dropped")
	}

	log.Println("Reset complete!")
}
